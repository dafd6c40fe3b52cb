package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	cancelBooking "github.com/lashroom/scheduling-service/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись не найдена"
	msgCannotCancel       = "запись нельзя отменить из текущего статуса"
	msgInvalidInput       = "некорректные данные отмены"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID)); err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, cancelled_by=%s",
		bookingID, req.CancelledBy)
	w.WriteHeader(http.StatusNoContent)
}
