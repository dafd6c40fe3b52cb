package delete_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("delete_booking: booking not found")

	// ErrCannotDelete возвращается, когда запись нельзя удалить из текущего статуса
	ErrCannotDelete = errors.New("delete_booking: booking cannot be deleted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_booking: internal error")
)
