package get_available_dates

import (
	"context"
	"time"
)

// AvailabilityRepository интерфейс репозитория интервалов доступности
type AvailabilityRepository interface {
	ListDatesWithBookable(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
