package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashroom/scheduling-service/internal/domain"
	availabilityRepo "github.com/lashroom/scheduling-service/internal/infra/storage/availability"
	bookingRepo "github.com/lashroom/scheduling-service/internal/infra/storage/booking"
	"github.com/lashroom/scheduling-service/pkg/ptr"
)

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

type cancelled struct {
	status domain.BookingStatus
	reason string
}

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	cancelled map[int64]cancelled
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if f.cancelled == nil {
		f.cancelled = make(map[int64]cancelled)
	}
	f.cancelled[id] = cancelled{status: status, reason: reason}
	return nil
}

type fakeAvailabilityRepo struct {
	intervals []*domain.AvailabilityInterval
	released  map[int64]int64 // intervalID -> bookingID
}

func (f *fakeAvailabilityRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.AvailabilityInterval, error) {
	return f.intervals, nil
}

func (f *fakeAvailabilityRepo) Release(_ context.Context, id int64, bookingID int64) error {
	for _, interval := range f.intervals {
		if interval.ID == id && interval.IsConsumedBy(bookingID) {
			if f.released == nil {
				f.released = make(map[int64]int64)
			}
			f.released[id] = bookingID
			return nil
		}
	}
	return availabilityRepo.ErrNotLinked
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

func confirmedBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:     id,
		Date:   testDate,
		Range:  domain.TimeRange{Start: 840, End: 930},
		Status: domain.StatusConfirmed,
	}
}

func TestExecute_CancelByClientReleasesInterval(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: confirmedBooking(7)}}
	availability := &fakeAvailabilityRepo{intervals: []*domain.AvailabilityInterval{
		{
			ID:         3,
			Date:       testDate,
			Range:      domain.TimeRange{Start: 780, End: 960},
			Kind:       domain.IntervalOpen,
			Consumed:   true,
			ConsumedBy: ptr.Ptr(int64(7)),
		},
	}}
	cache := &fakeSlotsCache{}
	uc := NewUseCase(bookings, availability, &fakeTxManager{}, cache, noopLogger{})

	err := uc.Execute(context.Background(), &Request{
		BookingID:          7,
		CancelledBy:        CancelledByClient,
		CancellationReason: "передумала",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByClient, bookings.cancelled[7].status)
	assert.Equal(t, "передумала", bookings.cancelled[7].reason)
	assert.Equal(t, map[int64]int64{3: 7}, availability.released)
	assert.Equal(t, 1, cache.invalidated)
}

func TestExecute_CancelByMasterStatus(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: confirmedBooking(7)}}
	uc := NewUseCase(bookings, &fakeAvailabilityRepo{}, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), &Request{BookingID: 7, CancelledBy: CancelledByMaster})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByMaster, bookings.cancelled[7].status)
}

func TestExecute_PendingBookingReleasesNothing(t *testing.T) {
	b := confirmedBooking(7)
	b.Status = domain.StatusPending
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: b}}
	availability := &fakeAvailabilityRepo{intervals: []*domain.AvailabilityInterval{
		{ID: 3, Date: testDate, Range: domain.TimeRange{Start: 780, End: 960}, Kind: domain.IntervalOpen},
	}}
	uc := NewUseCase(bookings, availability, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), &Request{BookingID: 7, CancelledBy: CancelledByClient})
	require.NoError(t, err)

	assert.Empty(t, availability.released)
}

func TestExecute_ForeignIntervalNotReleased(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: confirmedBooking(7)}}
	availability := &fakeAvailabilityRepo{intervals: []*domain.AvailabilityInterval{
		{
			ID:         3,
			Date:       testDate,
			Range:      domain.TimeRange{Start: 780, End: 960},
			Kind:       domain.IntervalOpen,
			Consumed:   true,
			ConsumedBy: ptr.Ptr(int64(99)), // занят другой записью
		},
	}}
	uc := NewUseCase(bookings, availability, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), &Request{BookingID: 7, CancelledBy: CancelledByClient})
	require.NoError(t, err)

	assert.Empty(t, availability.released)
}

func TestExecute_TerminalStatusRejected(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{"completed", domain.StatusCompleted},
		{"cancelled by client", domain.StatusCancelledByClient},
		{"cancelled by master", domain.StatusCancelledByMaster},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := confirmedBooking(7)
			b.Status = tt.status
			bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: b}}
			uc := NewUseCase(bookings, &fakeAvailabilityRepo{}, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

			err := uc.Execute(context.Background(), &Request{BookingID: 7, CancelledBy: CancelledByClient})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: map[int64]*domain.Booking{}},
		&fakeAvailabilityRepo{},
		&fakeTxManager{},
		&fakeSlotsCache{},
		noopLogger{},
	)

	err := uc.Execute(context.Background(), &Request{BookingID: 42, CancelledBy: CancelledByClient})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidCancelledBy(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: map[int64]*domain.Booking{}},
		&fakeAvailabilityRepo{},
		&fakeTxManager{},
		&fakeSlotsCache{},
		noopLogger{},
	)

	err := uc.Execute(context.Background(), &Request{BookingID: 7, CancelledBy: "robot"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
