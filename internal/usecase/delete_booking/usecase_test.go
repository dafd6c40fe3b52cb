package delete_booking

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

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	deleted  []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	f.deleted = append(f.deleted, id)
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

func booking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:     id,
		Date:   testDate,
		Range:  domain.TimeRange{Start: 840, End: 930},
		Status: status,
	}
}

func newUseCase(bookings *fakeBookingRepo, availability *fakeAvailabilityRepo, cache *fakeSlotsCache) *UseCase {
	return NewUseCase(bookings, availability, &fakeTxManager{}, cache, noopLogger{})
}

func TestExecute_DeletesPendingBooking(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: booking(7, domain.StatusPending)}}
	availability := &fakeAvailabilityRepo{}
	cache := &fakeSlotsCache{}

	uc := newUseCase(bookings, availability, cache)

	err := uc.Execute(context.Background(), &Request{BookingID: 7})
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, bookings.deleted)
	assert.Empty(t, availability.released)
	assert.Equal(t, 1, cache.invalidated)
}

func TestExecute_DeleteCancelledReleasesInterval(t *testing.T) {
	// Отменённая запись с неосвобождённым интервалом: при удалении
	// интервал должен вернуться в пул доступности.
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: booking(7, domain.StatusCancelledByClient)}}
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

	uc := newUseCase(bookings, availability, cache)

	err := uc.Execute(context.Background(), &Request{BookingID: 7})
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, bookings.deleted)
	assert.Equal(t, map[int64]int64{3: 7}, availability.released)
	assert.Equal(t, 1, cache.invalidated)
}

func TestExecute_DoesNotTouchForeignInterval(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: booking(7, domain.StatusCompleted)}}
	availability := &fakeAvailabilityRepo{intervals: []*domain.AvailabilityInterval{
		{
			ID:         3,
			Date:       testDate,
			Range:      domain.TimeRange{Start: 780, End: 960},
			Kind:       domain.IntervalOpen,
			Consumed:   true,
			ConsumedBy: ptr.Ptr(int64(42)), // занят другой записью
		},
	}}
	cache := &fakeSlotsCache{}

	uc := newUseCase(bookings, availability, cache)

	err := uc.Execute(context.Background(), &Request{BookingID: 7})
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, bookings.deleted)
	assert.Empty(t, availability.released)
}

func TestExecute_ConfirmedCannotBeDeleted(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{7: booking(7, domain.StatusConfirmed)}}
	cache := &fakeSlotsCache{}

	uc := newUseCase(bookings, &fakeAvailabilityRepo{}, cache)

	err := uc.Execute(context.Background(), &Request{BookingID: 7})
	assert.ErrorIs(t, err, ErrCannotDelete)

	assert.Empty(t, bookings.deleted)
	assert.Equal(t, 0, cache.invalidated)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, &fakeSlotsCache{})

	err := uc.Execute(context.Background(), &Request{BookingID: 404})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidBookingID(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, &fakeSlotsCache{})

	err := uc.Execute(context.Background(), &Request{BookingID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
