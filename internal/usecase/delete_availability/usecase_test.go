package delete_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashroom/scheduling-service/internal/domain"
	availabilityRepo "github.com/lashroom/scheduling-service/internal/infra/storage/availability"
	"github.com/lashroom/scheduling-service/pkg/ptr"
)

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

type fakeAvailabilityRepo struct {
	intervals map[int64]*domain.AvailabilityInterval
	deleted   []int64
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityInterval, error) {
	interval, ok := f.intervals[id]
	if !ok {
		return nil, availabilityRepo.ErrIntervalNotFound
	}
	return interval, nil
}

func (f *fakeAvailabilityRepo) Delete(_ context.Context, id int64) error {
	interval, ok := f.intervals[id]
	if !ok || interval.Consumed {
		return availabilityRepo.ErrIntervalNotFound
	}
	delete(f.intervals, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSlotsCache struct {
	invalidated []time.Time
}

func (f *fakeSlotsCache) InvalidateDate(_ context.Context, date time.Time) error {
	f.invalidated = append(f.invalidated, date)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestExecute_DeletesInterval(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		intervals: map[int64]*domain.AvailabilityInterval{
			1: {ID: 1, Date: testDate, Range: domain.TimeRange{Start: 540, End: 1140}, Kind: domain.IntervalOpen},
		},
	}
	cache := &fakeSlotsCache{}
	uc := NewUseCase(repo, &fakeTxManager{}, cache, noopLogger{})

	err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.deleted)
	require.Len(t, cache.invalidated, 1)
	assert.True(t, cache.invalidated[0].Equal(testDate))
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeAvailabilityRepo{intervals: map[int64]*domain.AvailabilityInterval{}}
	uc := NewUseCase(repo, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), 42)
	assert.ErrorIs(t, err, ErrIntervalNotFound)
}

func TestExecute_ConsumedIntervalRejected(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		intervals: map[int64]*domain.AvailabilityInterval{
			1: {
				ID:         1,
				Date:       testDate,
				Range:      domain.TimeRange{Start: 540, End: 1140},
				Kind:       domain.IntervalOpen,
				Consumed:   true,
				ConsumedBy: ptr.Ptr(int64(7)),
			},
		},
	}
	cache := &fakeSlotsCache{}
	uc := NewUseCase(repo, &fakeTxManager{}, cache, noopLogger{})

	err := uc.Execute(context.Background(), 1)
	assert.ErrorIs(t, err, ErrIntervalInUse)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, cache.invalidated)
}

func TestExecute_InvalidID(t *testing.T) {
	uc := NewUseCase(&fakeAvailabilityRepo{}, &fakeTxManager{}, &fakeSlotsCache{}, noopLogger{})

	err := uc.Execute(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
