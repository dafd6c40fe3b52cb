package confirm_booking

import "context"

type ConfirmBookingUseCase interface {
	Execute(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
