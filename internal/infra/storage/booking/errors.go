package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBookingOverlap возвращается, когда exclusion constraint БД отклонил
	// пересекающуюся активную запись. Авторитетная защита от гонки check-then-act.
	ErrBookingOverlap = errors.New("booking.repository: booking overlaps existing one")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
