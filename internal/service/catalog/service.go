package catalog

import (
	"context"
	"fmt"

	"github.com/lashroom/scheduling-service/internal/service/catalog/models"
)

// Service сервис каталога услуг студии
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListActive получает все услуги, доступные для записи
func (s *Service) ListActive(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("ListActive: fetching active services")

	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}
