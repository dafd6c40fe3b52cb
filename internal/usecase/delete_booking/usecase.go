package delete_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityRepo "github.com/lashroom/scheduling-service/internal/infra/storage/availability"
	bookingRepo "github.com/lashroom/scheduling-service/internal/infra/storage/booking"
	"github.com/lashroom/scheduling-service/internal/schedule"
)

// UseCase use case для физического удаления записи мастером
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

// Execute выполняет use case удаления записи. Удалить можно только запись в
// ожидании подтверждения или уже завершённую/отменённую: активная подтверждённая
// запись сначала отменяется. Если удаляемая запись успела занять интервал
// доступности (отменённая с неосвобождённым интервалом), интервал освобождается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("DeleteBooking: deleting booking id=%d", req.BookingID)

	if req.BookingID <= 0 {
		uc.logger.Warn("DeleteBooking: validation failed: bookingID=%d", req.BookingID)
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var date time.Time

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("DeleteBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("DeleteBooking: repository error for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Подтверждённую запись нельзя удалить, минуя отмену
		if !booking.CanBeDeleted() {
			uc.logger.Warn("DeleteBooking: booking id=%d cannot be deleted, status=%s",
				req.BookingID, booking.Status)
			return ErrCannotDelete
		}

		date = booking.Date

		// 3. Освобождаем интервал, закреплённый за этой записью (FOR UPDATE)
		intervals, err := uc.availabilityRepo.ListByDate(txCtx, booking.Date)
		if err != nil {
			uc.logger.Error("DeleteBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		decision := schedule.ReconcileRelease(req.BookingID, intervals)
		if decision.Release {
			if err := uc.availabilityRepo.Release(txCtx, decision.IntervalID, req.BookingID); err != nil {
				if errors.Is(err, availabilityRepo.ErrNotLinked) {
					// Интервал успел перейти к другой записи, не трогаем
					uc.logger.Warn("DeleteBooking: interval id=%d no longer linked to booking id=%d",
						decision.IntervalID, req.BookingID)
				} else {
					uc.logger.Error("DeleteBooking: failed to release interval id=%d: %v",
						decision.IntervalID, err)
					return fmt.Errorf("%w: failed to release interval: %v", ErrInternal, err)
				}
			} else {
				uc.logger.Info("DeleteBooking: released interval id=%d from booking id=%d",
					decision.IntervalID, req.BookingID)
			}
		}

		// 4. Удаляем запись
		if err := uc.bookingRepo.Delete(txCtx, req.BookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("DeleteBooking: failed to delete booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	if err := uc.slotsCache.InvalidateDate(ctx, date); err != nil {
		uc.logger.Warn("DeleteBooking: failed to invalidate slots cache: %v", err)
	}

	uc.logger.Info("DeleteBooking: successfully deleted booking id=%d", req.BookingID)
	return nil
}
