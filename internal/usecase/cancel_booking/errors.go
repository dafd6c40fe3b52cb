package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrCannotCancel возвращается, когда запись нельзя отменить из текущего статуса
	ErrCannotCancel = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
