package get_day_schedule

import (
	"context"
	"fmt"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/internal/schedule"
	"github.com/lashroom/scheduling-service/pkg/types"
)

// UseCase use case для получения расписания дня мастером
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case получения расписания дня.
// Обе выборки делаются в одной read-only транзакции, чтобы интервалы
// и записи относились к одному снимку дня.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var (
		intervals []*domain.AvailabilityInterval
		bookings  []*domain.Booking
	)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		intervals, err = uc.availabilityRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("GetDaySchedule: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		bookings, err = uc.bookingRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("GetDaySchedule: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	day := schedule.BuildDaySchedule(req.Date, intervals, bookings)
	entries := day.Entries()

	resp := &Response{
		Date:    req.Date,
		Entries: make([]Entry, len(entries)),
	}
	for i, entry := range entries {
		resp.Entries[i] = toEntry(entry)
	}

	uc.logger.Info("GetDaySchedule: %d entries on %s", len(resp.Entries), req.Date.Format(domain.DateFormat))
	return resp, nil
}

func toEntry(e schedule.TimelineEntry) Entry {
	r := e.Range()
	entry := Entry{
		StartTime: types.TimeStringFromMinutes(r.Start),
		EndTime:   types.TimeStringFromMinutes(r.End),
	}

	switch e.Kind {
	case schedule.EntryAvailability:
		entry.Kind = "availability"
		entry.IntervalID = e.Availability.ID
		entry.IntervalKind = string(e.Availability.Kind)
		entry.Consumed = e.Availability.Consumed
		entry.ConsumedBy = e.Availability.ConsumedBy
	case schedule.EntryBooking:
		entry.Kind = "booking"
		entry.BookingID = e.Booking.ID
		entry.Status = string(e.Booking.Status)
		entry.ClientName = e.Booking.ClientName
		entry.ServiceName = e.Booking.ServiceName
	}

	return entry
}
