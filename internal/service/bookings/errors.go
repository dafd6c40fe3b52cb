package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotComplete возвращается, когда запись не может быть завершена
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
