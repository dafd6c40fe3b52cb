package confirm_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrCannotConfirm возвращается, когда запись нельзя подтвердить из текущего статуса
	ErrCannotConfirm = errors.New("confirm_booking: booking cannot be confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
