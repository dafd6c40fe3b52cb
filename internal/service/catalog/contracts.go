package catalog

import (
	"context"

	"github.com/lashroom/scheduling-service/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	ListActive(ctx context.Context) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
