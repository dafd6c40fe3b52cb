package list_services

import (
	"context"

	"github.com/lashroom/scheduling-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListActive(ctx context.Context) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
