package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	availabilityRepo "github.com/lashroom/scheduling-service/internal/infra/storage/availability"
	bookingRepo "github.com/lashroom/scheduling-service/internal/infra/storage/booking"
	"github.com/lashroom/scheduling-service/internal/schedule"
)

// UseCase use case для отмены записи клиентом или мастером
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

// Execute выполняет use case отмены записи.
// Если запись заняла интервал доступности при подтверждении, интервал
// освобождается. Освобождение ведётся строго по ссылке ConsumedBy: чужой
// интервал не трогаем даже при совпадении времени.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelBooking: cancelling booking id=%d by %s", req.BookingID, req.CancelledBy)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return err
	}

	cancelStatus := domain.StatusCancelledByClient
	if req.CancelledBy == CancelledByMaster {
		cancelStatus = domain.StatusCancelledByMaster
	}

	var date time.Time

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: repository error for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Отменить можно только активную запись
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled, status=%s",
				req.BookingID, booking.Status)
			return ErrCannotCancel
		}

		date = booking.Date

		// 3. Отменяем запись
		if err := uc.bookingRepo.Cancel(txCtx, req.BookingID, cancelStatus, req.CancellationReason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 4. Освобождаем интервал, закреплённый за этой записью (FOR UPDATE)
		intervals, err := uc.availabilityRepo.ListByDate(txCtx, booking.Date)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		decision := schedule.ReconcileRelease(req.BookingID, intervals)
		if !decision.Release {
			// Запись не успела занять интервал — освобождать нечего
			return nil
		}

		if err := uc.availabilityRepo.Release(txCtx, decision.IntervalID, req.BookingID); err != nil {
			if errors.Is(err, availabilityRepo.ErrNotLinked) {
				// Интервал успел перейти к другой записи, не трогаем
				uc.logger.Warn("CancelBooking: interval id=%d no longer linked to booking id=%d",
					decision.IntervalID, req.BookingID)
				return nil
			}
			uc.logger.Error("CancelBooking: failed to release interval id=%d: %v", decision.IntervalID, err)
			return fmt.Errorf("%w: failed to release interval: %v", ErrInternal, err)
		}

		uc.logger.Info("CancelBooking: released interval id=%d from booking id=%d",
			decision.IntervalID, req.BookingID)
		return nil
	})

	if err != nil {
		return err
	}

	if err := uc.slotsCache.InvalidateDate(ctx, date); err != nil {
		uc.logger.Warn("CancelBooking: failed to invalidate slots cache: %v", err)
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d with status=%s",
		req.BookingID, cancelStatus)
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	switch req.CancelledBy {
	case CancelledByClient, CancelledByMaster:
	default:
		return fmt.Errorf("%w: unknown cancelledBy %q", ErrInvalidInput, req.CancelledBy)
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	return nil
}
