package get_available_dates

import (
	"context"
	"fmt"
	"time"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/internal/schedule"
)

// UseCase use case для получения дат со свободными интервалами доступности
type UseCase struct {
	availabilityRepo AvailabilityRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityRepo AvailabilityRepository, logger Logger) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения дат, на которые есть хотя бы один
// свободный открытый интервал. Прошедшие дни из периода отсекаются: запись
// в прошлое невозможна, показывать такие даты клиенту нет смысла.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: period %s..%s",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	from := schedule.DateOnly(req.From)
	to := schedule.DateOnly(req.To)

	today := schedule.DateOnly(uc.timeProvider.Now())
	if from.Before(today) {
		from = today
	}

	// Весь период в прошлом — свободных дат заведомо нет
	if to.Before(from) {
		return &Response{From: from, To: to, Dates: []time.Time{}}, nil
	}

	dates, err := uc.availabilityRepo.ListDatesWithBookable(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list dates: %v", err)
		return nil, fmt.Errorf("%w: failed to list dates: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableDates: %d dates with bookable intervals in %s..%s",
		len(dates), from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	return &Response{
		From:  from,
		To:    to,
		Dates: dates,
	}, nil
}

// validateRequest валидирует границы периода
func validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	from := schedule.DateOnly(req.From)
	to := schedule.DateOnly(req.To)

	if to.Before(from) {
		return fmt.Errorf("%w: to is before from", ErrInvalidPeriod)
	}

	if to.Sub(from) > time.Duration(domain.MaxAdvanceBookingDays)*24*time.Hour {
		return fmt.Errorf("%w: period is longer than %d days", ErrInvalidPeriod, domain.MaxAdvanceBookingDays)
	}

	return nil
}
