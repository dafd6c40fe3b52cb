package studioconfig

import (
	"context"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации студии
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.StudioConfig, error)
	Upsert(ctx context.Context, cfg *domain.StudioConfig) (*domain.StudioConfig, error)
}

// SlotsCache интерфейс кэша доступных слотов
type SlotsCache interface {
	InvalidateAll(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
