package get_available_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/internal/infra/cache/slotscache"
	catalogRepo "github.com/lashroom/scheduling-service/internal/infra/storage/catalog"
	configRepo "github.com/lashroom/scheduling-service/internal/infra/storage/studioconfig"
)

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeAvailabilityRepo struct {
	intervals []*domain.AvailabilityInterval
	calls     int
}

func (f *fakeAvailabilityRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.AvailabilityInterval, error) {
	f.calls++
	return f.intervals, nil
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeConfigRepo struct {
	config *domain.StudioConfig
}

func (f *fakeConfigRepo) Get(_ context.Context) (*domain.StudioConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeSlotsCache struct {
	data map[string][]domain.TimeRange
}

func newFakeSlotsCache() *fakeSlotsCache {
	return &fakeSlotsCache{data: make(map[string][]domain.TimeRange)}
}

func (f *fakeSlotsCache) key(serviceID int64, date time.Time) string {
	return fmt.Sprintf("%d/%s", serviceID, date.Format(domain.DateFormat))
}

func (f *fakeSlotsCache) Get(_ context.Context, serviceID int64, date time.Time) ([]domain.TimeRange, error) {
	slots, ok := f.data[f.key(serviceID, date)]
	if !ok {
		return nil, slotscache.ErrCacheMiss
	}
	return slots, nil
}

func (f *fakeSlotsCache) Set(_ context.Context, serviceID int64, date time.Time, slots []domain.TimeRange) error {
	f.data[f.key(serviceID, date)] = slots
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc           *UseCase
	bookingRepo  *fakeBookingRepo
	availability *fakeAvailabilityRepo
	cache        *fakeSlotsCache
}

func newFixture(now time.Time) *fixture {
	bookingRepo := &fakeBookingRepo{}
	availability := &fakeAvailabilityRepo{
		intervals: []*domain.AvailabilityInterval{
			{ID: 1, Date: testDate, Range: domain.TimeRange{Start: 540, End: 1140}, Kind: domain.IntervalOpen},
		},
	}
	cache := newFakeSlotsCache()

	uc := NewUseCase(
		bookingRepo,
		availability,
		&fakeServiceRepo{
			service: &domain.Service{
				ID:              1,
				Name:            "Classic full set",
				DurationMinutes: 120,
				Price:           3500,
				Active:          true,
			},
		},
		&fakeConfigRepo{},
		cache,
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &fixture{
		uc:           uc,
		bookingRepo:  bookingRepo,
		availability: availability,
		cache:        cache,
	}
}

func TestExecute_FullDay(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	// Интервал 09:00-19:00, услуга 120 минут, шаг 30 минут
	require.Len(t, resp.Slots, 17)
	assert.Equal(t, "09:00", string(resp.Slots[0].StartTime))
	assert.Equal(t, "11:00", string(resp.Slots[0].EndTime))
	assert.Equal(t, "17:00", string(resp.Slots[16].StartTime))
	assert.Equal(t, 120, resp.Slots[0].DurationMinutes)
}

func TestExecute_BookingBlocksOverlappingSlots(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))
	f.bookingRepo.bookings = []*domain.Booking{
		{ID: 5, Date: testDate, Range: domain.TimeRange{Start: 600, End: 660}, Status: domain.StatusConfirmed},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		start, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		candidate := domain.TimeRange{Start: start, End: start + slot.DurationMinutes}
		assert.False(t, candidate.Overlaps(domain.TimeRange{Start: 600, End: 660}),
			"slot %s overlaps booking", slot.StartTime)
	}

	// Слот, заканчивающийся ровно в начале записи, остаётся доступным
	starts := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		starts[i] = string(s.StartTime)
	}
	assert.NotContains(t, starts, "09:30")
	assert.Contains(t, starts, "11:00")
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	// Сейчас 10:15, уведомление за 60 минут: слоты раньше 11:15 отсекаются
	f := newFixture(time.Date(2026, 9, 14, 10, 15, 0, 0, time.UTC))

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "11:30", string(resp.Slots[0].StartTime))
}

func TestExecute_CacheHitSkipsRecompute(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, 1, f.availability.calls)

	_, err = f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, 1, f.availability.calls, "second call must be served from cache")
}

func TestExecute_ConsumedIntervalYieldsNoSlots(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))
	f.availability.intervals[0].Consumed = true

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, 1))

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))
	f.uc.configRepo = &fakeConfigRepo{
		config: &domain.StudioConfig{
			SlotStepMinutes:         30,
			AdvanceBookingDays:      7,
			MinBookingNoticeMinutes: 60,
		},
	}

	_, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate.AddDate(0, 0, 30)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}
