package get_available_slots

import (
	"context"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
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

// SlotsCache интерфейс кэша рассчитанных слотов
type SlotsCache interface {
	Get(ctx context.Context, serviceID int64, date time.Time) ([]domain.TimeRange, error)
	Set(ctx context.Context, serviceID int64, date time.Time, slots []domain.TimeRange) error
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
