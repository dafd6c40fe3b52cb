package add_availability

import "errors"

var (
	// ErrIntervalOverlap возвращается, когда интервал пересекается с существующим
	ErrIntervalOverlap = errors.New("add_availability: interval overlaps an existing one")

	// ErrInvalidDate возвращается при некорректной дате интервала
	ErrInvalidDate = errors.New("add_availability: invalid date")

	// ErrInvalidKind возвращается при неизвестном типе интервала
	ErrInvalidKind = errors.New("add_availability: invalid interval kind")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_availability: internal error")
)
