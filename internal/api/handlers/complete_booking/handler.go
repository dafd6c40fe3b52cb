package complete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
	"github.com/lashroom/scheduling-service/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID записи"
	msgNotFound         = "запись не найдена"
	msgCannotComplete   = "запись нельзя завершить из текущего статуса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Complete(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/complete - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotComplete):
			h.logger.Warn("PATCH /bookings/{id}/complete - Cannot complete: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotComplete)

		default:
			h.logger.Error("PATCH /bookings/{id}/complete - Failed to complete booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/complete - Booking completed successfully: booking_id=%d", bookingID)
	w.WriteHeader(http.StatusNoContent)
}
