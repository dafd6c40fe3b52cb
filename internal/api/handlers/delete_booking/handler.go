package delete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	deleteBooking "github.com/lashroom/scheduling-service/internal/usecase/delete_booking"
)

const (
	msgInvalidBookingID = "некорректный ID записи"
	msgNotFound         = "запись не найдена"
	msgCannotDelete     = "запись нельзя удалить: сначала отмените её"
)

type Handler struct {
	useCase DeleteBookingUseCase
	logger  Logger
}

func NewHandler(useCase DeleteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.useCase.Execute(r.Context(), &deleteBooking.Request{BookingID: bookingID}); err != nil {
		switch {
		case errors.Is(err, deleteBooking.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, deleteBooking.ErrCannotDelete):
			h.logger.Warn("DELETE /bookings/{id} - Booking cannot be deleted: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotDelete)

		case errors.Is(err, deleteBooking.ErrInvalidInput):
			h.logger.Warn("DELETE /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted successfully: booking_id=%d", bookingID)
	w.WriteHeader(http.StatusNoContent)
}
