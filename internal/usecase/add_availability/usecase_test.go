package add_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashroom/scheduling-service/internal/domain"
)

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

type fakeAvailabilityRepo struct {
	intervals []*domain.AvailabilityInterval
	nextID    int64
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, interval *domain.AvailabilityInterval) (*domain.AvailabilityInterval, error) {
	f.nextID++
	interval.ID = f.nextID
	interval.CreatedAt = time.Now()
	f.intervals = append(f.intervals, interval)
	return interval, nil
}

func (f *fakeAvailabilityRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.AvailabilityInterval, error) {
	return f.intervals, nil
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

func newUseCase(repo *fakeAvailabilityRepo, cache *fakeSlotsCache) *UseCase {
	uc := NewUseCase(repo, &fakeTxManager{}, cache, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testDate.AddDate(0, 0, -1)}
	return uc
}

func TestExecute_CreatesOpenInterval(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	cache := &fakeSlotsCache{}
	uc := newUseCase(repo, cache)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		StartTime: "09:00",
		EndTime:   "19:00",
		Kind:      "open",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "09:00", string(resp.StartTime))
	assert.Equal(t, "19:00", string(resp.EndTime))
	assert.Equal(t, "open", resp.Kind)
	assert.Equal(t, 1, cache.invalidated)
}

func TestExecute_CreatesBreak(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	uc := newUseCase(repo, &fakeSlotsCache{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		StartTime: "13:00",
		EndTime:   "14:00",
		Kind:      "break",
	})
	require.NoError(t, err)
	assert.Equal(t, "break", resp.Kind)
}

func TestExecute_OverlapRejected(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		intervals: []*domain.AvailabilityInterval{
			{ID: 1, Date: testDate, Range: domain.TimeRange{Start: 540, End: 780}, Kind: domain.IntervalOpen},
		},
		nextID: 1,
	}
	cache := &fakeSlotsCache{}
	uc := newUseCase(repo, cache)

	_, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		StartTime: "12:00",
		EndTime:   "15:00",
		Kind:      "open",
	})
	assert.ErrorIs(t, err, ErrIntervalOverlap)
	assert.Equal(t, 0, cache.invalidated)
}

func TestExecute_TouchingIntervalAllowed(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		intervals: []*domain.AvailabilityInterval{
			{ID: 1, Date: testDate, Range: domain.TimeRange{Start: 540, End: 780}, Kind: domain.IntervalOpen},
		},
		nextID: 1,
	}
	uc := newUseCase(repo, &fakeSlotsCache{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		StartTime: "13:00",
		EndTime:   "19:00",
		Kind:      "open",
	})
	require.NoError(t, err)
	assert.Equal(t, "13:00", string(resp.StartTime))
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{}, &fakeSlotsCache{})
	uc.timeProvider = &fixedTimeProvider{now: testDate.AddDate(0, 0, 1)}

	_, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		StartTime: "09:00",
		EndTime:   "19:00",
		Kind:      "open",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{}, &fakeSlotsCache{})

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{
			"end before start",
			&Request{Date: testDate, StartTime: "19:00", EndTime: "09:00", Kind: "open"},
			ErrInvalidInput,
		},
		{
			"equal bounds",
			&Request{Date: testDate, StartTime: "09:00", EndTime: "09:00", Kind: "open"},
			ErrInvalidInput,
		},
		{
			"bad kind",
			&Request{Date: testDate, StartTime: "09:00", EndTime: "19:00", Kind: "lunch"},
			ErrInvalidKind,
		},
		{
			"bad time format",
			&Request{Date: testDate, StartTime: "9am", EndTime: "19:00", Kind: "open"},
			ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
