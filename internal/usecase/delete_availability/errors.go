package delete_availability

import "errors"

var (
	// ErrIntervalNotFound возвращается, когда интервал не найден
	ErrIntervalNotFound = errors.New("delete_availability: interval not found")

	// ErrIntervalInUse возвращается, когда интервал закреплён за записью
	ErrIntervalInUse = errors.New("delete_availability: interval is consumed by a booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_availability: internal error")
)
