package add_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/lashroom/scheduling-service/internal/domain"
	availabilityRepo "github.com/lashroom/scheduling-service/internal/infra/storage/availability"
	"github.com/lashroom/scheduling-service/internal/schedule"
	"github.com/lashroom/scheduling-service/pkg/types"
)

// UseCase use case для добавления интервала доступности мастером
type UseCase struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	slotsCache       SlotsCache
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	slotsCache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		slotsCache:       slotsCache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case добавления интервала.
// Интервалы одного дня не пересекаются: советующая проверка внутри
// транзакции, авторитетная — exclusion constraint в базе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddAvailability: date=%s, time=%s-%s, kind=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Kind)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("AddAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Строим диапазон интервала
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endMinutes, err := req.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	timeRange, err := domain.NewTimeRange(startMinutes, endMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.AvailabilityInterval

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Загружаем интервалы дня с блокировкой строк (FOR UPDATE)
		existing, err := uc.availabilityRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("AddAvailability: failed to get intervals: %v", err)
			return fmt.Errorf("%w: failed to get intervals: %v", ErrInternal, err)
		}

		// 4.2. Новый интервал не должен пересекаться с существующими
		for _, interval := range existing {
			if interval.Range.Overlaps(timeRange) {
				uc.logger.Warn("AddAvailability: %s overlaps existing interval id=%d (%s)",
					timeRange, interval.ID, interval.Range)
				return ErrIntervalOverlap
			}
		}

		// 4.3. Сохраняем интервал
		created, err := uc.availabilityRepo.Create(txCtx, &domain.AvailabilityInterval{
			Date:  schedule.DateOnly(req.Date),
			Range: timeRange,
			Kind:  domain.IntervalKind(req.Kind),
		})
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrIntervalOverlap) {
				uc.logger.Warn("AddAvailability: %s rejected by overlap constraint", timeRange)
				return ErrIntervalOverlap
			}
			uc.logger.Error("AddAvailability: failed to create interval: %v", err)
			return fmt.Errorf("%w: failed to create interval: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. Сбрасываем кэш слотов этого дня (не критично при ошибке)
	if err := uc.slotsCache.InvalidateDate(ctx, req.Date); err != nil {
		uc.logger.Warn("AddAvailability: failed to invalidate slots cache: %v", err)
	}

	uc.logger.Info("AddAvailability: successfully created interval id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		Date:      result.Date,
		StartTime: types.TimeStringFromMinutes(result.Range.Start),
		EndTime:   types.TimeStringFromMinutes(result.Range.End),
		Kind:      string(result.Kind),
		CreatedAt: result.CreatedAt,
	}, nil
}
