package availability

import "errors"

var (
	// ErrIntervalNotFound возвращается, когда интервал не найден
	ErrIntervalNotFound = errors.New("availability.repository: interval not found")

	// ErrIntervalOverlap возвращается, когда exclusion constraint БД отклонил
	// пересекающийся интервал. Это авторитетная защита от гонки check-then-act.
	ErrIntervalOverlap = errors.New("availability.repository: interval overlaps existing one")

	// ErrNotLinked возвращается при попытке освободить интервал, занятый другой записью
	ErrNotLinked = errors.New("availability.repository: interval is not consumed by this booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
