package confirm_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashroom/scheduling-service/internal/domain"
	bookingRepo "github.com/lashroom/scheduling-service/internal/infra/storage/booking"
	"github.com/lashroom/scheduling-service/pkg/ptr"
)

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	statuses map[int64]domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if f.statuses == nil {
		f.statuses = make(map[int64]domain.BookingStatus)
	}
	f.statuses[id] = status
	return nil
}

type fakeAvailabilityRepo struct {
	intervals []*domain.AvailabilityInterval
	consumed  map[int64]int64 // intervalID -> bookingID
}

func (f *fakeAvailabilityRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.AvailabilityInterval, error) {
	return f.intervals, nil
}

func (f *fakeAvailabilityRepo) MarkConsumed(_ context.Context, id int64, bookingID int64) error {
	if f.consumed == nil {
		f.consumed = make(map[int64]int64)
	}
	f.consumed[id] = bookingID
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSlotsCache struct {
	invalidated int
}

func (f *fakeSlotsCache) InvalidateDate(_ context.Context, _ time.Time) error {
	f.invalidated++
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func pendingBooking(id int64, start, end int) *domain.Booking {
	return &domain.Booking{
		ID:     id,
		Date:   testDate,
		Range:  domain.TimeRange{Start: start, End: end},
		Status: domain.StatusPending,
	}
}

func TestExecute_ConfirmsAndConsumesInterval(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		7: pendingBooking(7, 840, 930),
	}}
	availability := &fakeAvailabilityRepo{intervals: []*domain.AvailabilityInterval{
		{ID: 3, Date: testDate, Range: domain.TimeRange{Start: 780, End: 960}, Kind: domain.IntervalOpen},
	}}
	cache := &fakeSlotsCache{}
	uc := NewUseCase(bookings, availability, &fakeTxManager{}, cache, noopLogger{})

	err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, bookings.statuses[7])
	assert.Equal(t, int64(7), availability.consumed[3])
	assert.Equal(t, 1, cache.invalidated)
}

func TestExecute_NoMatchingIntervalStillConfirms(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		7: pendingBooking(7, 840, 930),
	}}
	availability := &fakeAvailabilityRepo{}
	uc := NewUseCase(bookings, availability, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, bookings.statuses[7])
	assert.Empty(t, availability.consumed)
}

func TestExecute_AmbiguousTakesEarliest(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		7: pendingBooking(7, 600, 660),
	}}
	availability := &fakeAvailabilityRepo{intervals: []*domain.AvailabilityInterval{
		{ID: 2, Date: testDate, Range: domain.TimeRange{Start: 570, End: 720}, Kind: domain.IntervalOpen},
		{ID: 1, Date: testDate, Range: domain.TimeRange{Start: 540, End: 780}, Kind: domain.IntervalOpen},
	}}
	uc := NewUseCase(bookings, availability, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, map[int64]int64{1: 7}, availability.consumed)
}

func TestExecute_AlreadyConfirmedRejected(t *testing.T) {
	b := pendingBooking(7, 840, 930)
	b.Status = domain.StatusConfirmed
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: b}}
	uc := NewUseCase(bookings, &fakeAvailabilityRepo{}, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), 7)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestExecute_CancelledRejected(t *testing.T) {
	b := pendingBooking(7, 840, 930)
	b.Status = domain.StatusCancelledByClient
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: b}}
	uc := NewUseCase(bookings, &fakeAvailabilityRepo{}, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), 7)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestExecute_NotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: map[int64]*domain.Booking{}},
		&fakeAvailabilityRepo{},
		&fakeTxManager{},
		&fakeSlotsCache{},
		noopLogger{},
	)

	err := uc.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ConsumedByOtherBookingNotTouched(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		7: pendingBooking(7, 840, 930),
	}}
	availability := &fakeAvailabilityRepo{intervals: []*domain.AvailabilityInterval{
		{
			ID:         3,
			Date:       testDate,
			Range:      domain.TimeRange{Start: 780, End: 960},
			Kind:       domain.IntervalOpen,
			Consumed:   true,
			ConsumedBy: ptr.Ptr(int64(99)),
		},
	}}
	uc := NewUseCase(bookings, availability, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)

	// Интервал занят другой записью: подтверждаем без закрепления
	assert.Equal(t, domain.StatusConfirmed, bookings.statuses[7])
	assert.Empty(t, availability.consumed)
}
