package bookings

import (
	"context"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
