package create_booking

import (
	"context"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория интервалов доступности
type AvailabilityRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityInterval, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ConfigRepository интерфейс репозитория конфигурации студии
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.StudioConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsCache интерфейс кэша доступных слотов
type SlotsCache interface {
	InvalidateDate(ctx context.Context, date time.Time) error
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
