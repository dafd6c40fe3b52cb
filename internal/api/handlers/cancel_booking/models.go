package cancel_booking

import (
	cancelBooking "github.com/lashroom/scheduling-service/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancelledBy        string `json:"cancelledBy"` // "client" или "master"
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID:          bookingID,
		CancelledBy:        cancelBooking.CancelledBy(r.CancelledBy),
		CancellationReason: r.CancellationReason,
	}
}
