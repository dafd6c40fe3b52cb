package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashroom/scheduling-service/internal/domain"
	catalogRepo "github.com/lashroom/scheduling-service/internal/infra/storage/catalog"
	configRepo "github.com/lashroom/scheduling-service/internal/infra/storage/studioconfig"
)

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeAvailabilityRepo struct {
	intervals []*domain.AvailabilityInterval
}

func (f *fakeAvailabilityRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.AvailabilityInterval, error) {
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

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSlotsCache struct {
	invalidated []time.Time
}

func (f *fakeSlotsCache) InvalidateDate(_ context.Context, date time.Time) error {
	f.invalidated = append(f.invalidated, date)
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
	serviceRepo := &fakeServiceRepo{
		service: &domain.Service{
			ID:              1,
			Name:            "Classic full set",
			DurationMinutes: 120,
			Price:           3500,
			Active:          true,
		},
	}
	cache := &fakeSlotsCache{}

	uc := NewUseCase(
		bookingRepo,
		availability,
		serviceRepo,
		&fakeConfigRepo{},
		&fakeTxManager{},
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

func validRequest() *Request {
	return &Request{
		ServiceID:   1,
		Date:        testDate,
		StartTime:   "10:00",
		ClientName:  "Анна",
		ClientPhone: "+79990001122",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10:00", string(resp.StartTime))
	assert.Equal(t, "12:00", string(resp.EndTime))
	assert.Equal(t, "Classic full set", resp.ServiceName)
	assert.Equal(t, 3500.0, resp.ServicePrice)

	require.NotNil(t, f.bookingRepo.created)
	assert.Equal(t, domain.TimeRange{Start: 600, End: 720}, f.bookingRepo.created.Range)
	assert.Len(t, f.cache.invalidated, 1)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))

	req := validRequest()
	req.ServiceID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))
	f.bookingRepo.bookings = []*domain.Booking{
		{ID: 5, Date: testDate, Range: domain.TimeRange{Start: 630, End: 690}, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, f.bookingRepo.created)
}

func TestExecute_TouchingSlotIsNotConflict(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))
	f.bookingRepo.bookings = []*domain.Booking{
		{ID: 5, Date: testDate, Range: domain.TimeRange{Start: 540, End: 600}, Status: domain.StatusConfirmed},
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "10:00", string(resp.StartTime))
}

func TestExecute_OutsideOpenHours(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))
	f.availability.intervals = []*domain.AvailabilityInterval{
		{ID: 1, Date: testDate, Range: domain.TimeRange{Start: 540, End: 660}, Kind: domain.IntervalOpen},
	}

	// Услуга длится 120 минут, интервал заканчивается в 11:00
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_ConsumedIntervalNotBookable(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))
	f.availability.intervals[0].Consumed = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, 1))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TooLateToBook(t *testing.T) {
	// Сейчас 09:30 того же дня, запись на 10:00 при уведомлении за 60 минут
	f := newFixture(time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -1))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty client name", func(r *Request) { r.ClientName = "   " }},
		{"empty client phone", func(r *Request) { r.ClientPhone = "" }},
		{"zero service id", func(r *Request) { r.ServiceID = 0 }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
