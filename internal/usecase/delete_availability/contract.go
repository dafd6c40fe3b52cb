package delete_availability

import (
	"context"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория интервалов доступности
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityInterval, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsCache интерфейс кэша доступных слотов
type SlotsCache interface {
	InvalidateDate(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
