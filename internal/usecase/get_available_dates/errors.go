package get_available_dates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInvalidPeriod возвращается, когда границы периода заданы некорректно
	ErrInvalidPeriod = errors.New("get_available_dates: invalid period")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
