package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceUnavailable возвращается, когда услуга снята с записи
	ErrServiceUnavailable = errors.New("create_booking: service is not bookable")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается в открытый интервал
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside open hours")

	// ErrSlotConflict возвращается, когда слот пересекается с занятым временем
	ErrSlotConflict = errors.New("create_booking: slot conflicts with occupied time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
