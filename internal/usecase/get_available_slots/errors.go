package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceUnavailable возвращается, когда услуга снята с записи
	ErrServiceUnavailable = errors.New("get_available_slots: service is not bookable")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
