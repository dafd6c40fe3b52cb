package cancel_booking

import (
	"context"

	cancelBooking "github.com/lashroom/scheduling-service/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancelBooking.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
