package confirm_booking

import (
	"context"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// AvailabilityRepository интерфейс репозитория интервалов доступности
type AvailabilityRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityInterval, error)
	MarkConsumed(ctx context.Context, id int64, bookingID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
