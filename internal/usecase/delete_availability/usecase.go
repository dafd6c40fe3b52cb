package delete_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	availabilityRepo "github.com/lashroom/scheduling-service/internal/infra/storage/availability"
)

// UseCase use case для удаления интервала доступности мастером
type UseCase struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	slotsCache       SlotsCache
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
		logger:           logger,
	}
}

// Execute выполняет use case удаления интервала.
// Интервал, закреплённый за подтверждённой записью, удалить нельзя —
// сначала нужно отменить запись.
func (uc *UseCase) Execute(ctx context.Context, id int64) error {
	uc.logger.Info("DeleteAvailability: deleting interval id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	var date time.Time

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		interval, err := uc.availabilityRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrIntervalNotFound) {
				uc.logger.Warn("DeleteAvailability: interval id=%d not found", id)
				return ErrIntervalNotFound
			}
			uc.logger.Error("DeleteAvailability: failed to get interval id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get interval: %v", ErrInternal, err)
		}

		if !interval.CanBeDeleted() {
			uc.logger.Warn("DeleteAvailability: interval id=%d is consumed by booking", id)
			return ErrIntervalInUse
		}

		date = interval.Date

		if err := uc.availabilityRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, availabilityRepo.ErrIntervalNotFound) {
				// Интервал успели закрепить или удалить параллельно
				uc.logger.Warn("DeleteAvailability: interval id=%d disappeared during delete", id)
				return ErrIntervalInUse
			}
			uc.logger.Error("DeleteAvailability: failed to delete interval id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to delete interval: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	if err := uc.slotsCache.InvalidateDate(ctx, date); err != nil {
		uc.logger.Warn("DeleteAvailability: failed to invalidate slots cache: %v", err)
	}

	uc.logger.Info("DeleteAvailability: successfully deleted interval id=%d on %s",
		id, date.Format(domain.DateFormat))
	return nil
}
