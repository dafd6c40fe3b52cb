package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	bookingRepo "github.com/lashroom/scheduling-service/internal/infra/storage/booking"
	"github.com/lashroom/scheduling-service/internal/schedule"
)

// UseCase use case для подтверждения записи мастером
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	slotsCache       SlotsCache
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	slotsCache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		slotsCache:       slotsCache,
		logger:           logger,
	}
}

// Execute выполняет use case подтверждения записи.
// Вместе со сменой статуса закрепляет за записью подходящий интервал
// доступности. Проблемы закрепления (нет кандидата, несколько кандидатов)
// не срывают подтверждение — они логируются для оператора.
func (uc *UseCase) Execute(ctx context.Context, id int64) error {
	uc.logger.Info("ConfirmBooking: confirming booking id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	var date time.Time

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись
		booking, err := uc.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmBooking: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Подтвердить можно только запись в статусе pending
		if !booking.CanBeConfirmed() {
			uc.logger.Warn("ConfirmBooking: booking id=%d cannot be confirmed, status=%s", id, booking.Status)
			return ErrCannotConfirm
		}

		date = booking.Date

		// 3. Меняем статус
		if err := uc.bookingRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
			uc.logger.Error("ConfirmBooking: failed to update status for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// 4. Закрепляем за записью интервал доступности (FOR UPDATE)
		intervals, err := uc.availabilityRepo.ListByDate(txCtx, booking.Date)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		decision := schedule.ReconcileConsumption(booking, intervals)
		switch decision.Kind {
		case schedule.DecisionConsume:
			if err := uc.availabilityRepo.MarkConsumed(txCtx, decision.IntervalID, id); err != nil {
				uc.logger.Error("ConfirmBooking: failed to consume interval id=%d: %v", decision.IntervalID, err)
				return fmt.Errorf("%w: failed to consume interval: %v", ErrInternal, err)
			}
			uc.logger.Info("ConfirmBooking: booking id=%d consumed interval id=%d", id, decision.IntervalID)

		case schedule.DecisionAmbiguous:
			uc.logger.Warn("ConfirmBooking: booking id=%d matches %d intervals %v, taking earliest id=%d",
				id, len(decision.CandidateIDs), decision.CandidateIDs, decision.IntervalID)
			if err := uc.availabilityRepo.MarkConsumed(txCtx, decision.IntervalID, id); err != nil {
				uc.logger.Error("ConfirmBooking: failed to consume interval id=%d: %v", decision.IntervalID, err)
				return fmt.Errorf("%w: failed to consume interval: %v", ErrInternal, err)
			}

		case schedule.DecisionNoMatch:
			uc.logger.Warn("ConfirmBooking: booking id=%d has no matching availability interval", id)

		case schedule.DecisionAlreadyConsumed:
			uc.logger.Info("ConfirmBooking: booking id=%d already consumed interval id=%d", id, decision.IntervalID)
		}

		return nil
	})

	if err != nil {
		return err
	}

	if err := uc.slotsCache.InvalidateDate(ctx, date); err != nil {
		uc.logger.Warn("ConfirmBooking: failed to invalidate slots cache: %v", err)
	}

	uc.logger.Info("ConfirmBooking: successfully confirmed booking id=%d", id)
	return nil
}
