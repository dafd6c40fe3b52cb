package studioconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/lashroom/scheduling-service/internal/domain"
	configRepo "github.com/lashroom/scheduling-service/internal/infra/storage/studioconfig"
	"github.com/lashroom/scheduling-service/internal/service/studioconfig/models"
)

// Service сервис настроек студии
type Service struct {
	configRepo ConfigRepository
	slotsCache SlotsCache
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(configRepo ConfigRepository, slotsCache SlotsCache, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		slotsCache: slotsCache,
		logger:     logger,
	}
}

// Get получает настройки студии.
// Пока настройки не сохранялись, возвращает значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*models.ConfigResponse, error) {
	cfg, err := s.GetDomain(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(cfg), nil
}

// GetDomain получает настройки студии как domain модель
func (s *Service) GetDomain(ctx context.Context) (*domain.StudioConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetDomain: config not found, using defaults")
			return domain.DefaultStudioConfig(), nil
		}
		s.logger.Error("GetDomain: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetDomain - repository error: %v", ErrInternal, err)
	}
	return cfg, nil
}

// Update обновляет настройки студии
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating studio config: step=%d, advanceDays=%d, notice=%d",
		req.SlotStepMinutes, req.AdvanceBookingDays, req.MinBookingNoticeMinutes)

	if err := validateConfig(req); err != nil {
		s.logger.Warn("Update: invalid config: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cfg, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Новый шаг сетки меняет слоты каждого дня — кэшированные списки устарели.
	// Ошибка инвалидации не критична: кэш доживёт до истечения TTL.
	if err := s.slotsCache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("Update: failed to invalidate slots cache: %v", err)
	}

	s.logger.Info("Update: successfully updated studio config")
	return models.FromDomainConfig(cfg), nil
}

func validateConfig(req *models.UpdateConfigRequest) error {
	if req.SlotStepMinutes < domain.MinSlotStepMinutes || req.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("slotStepMinutes must be between %d and %d",
			domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("advanceBookingDays must be between %d and %d",
			domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("minBookingNoticeMinutes must be between %d and %d",
			domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}
	return nil
}
