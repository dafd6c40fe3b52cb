package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	confirmBooking "github.com/lashroom/scheduling-service/internal/usecase/confirm_booking"
)

const (
	msgInvalidBookingID = "некорректный ID записи"
	msgNotFound         = "запись не найдена"
	msgCannotConfirm    = "запись нельзя подтвердить из текущего статуса"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.useCase.Execute(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmBooking.ErrCannotConfirm):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Cannot confirm: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotConfirm)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/{id}/confirm - Failed to confirm booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/confirm - Booking confirmed successfully: booking_id=%d", bookingID)
	w.WriteHeader(http.StatusNoContent)
}
