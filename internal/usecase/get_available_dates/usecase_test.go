package get_available_dates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

type fakeAvailabilityRepo struct {
	dates   []time.Time
	err     error
	gotFrom time.Time
	gotTo   time.Time
	called  int
}

func (f *fakeAvailabilityRepo) ListDatesWithBookable(_ context.Context, from, to time.Time) ([]time.Time, error) {
	f.called++
	f.gotFrom = from
	f.gotTo = to
	return f.dates, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newUseCase(repo *fakeAvailabilityRepo) *UseCase {
	uc := NewUseCase(repo, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func TestExecute_ReturnsDates(t *testing.T) {
	repo := &fakeAvailabilityRepo{dates: []time.Time{day(15), day(17)}}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{From: day(15), To: day(21)})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day(15), day(17)}, resp.Dates)
	assert.Equal(t, day(15), repo.gotFrom)
	assert.Equal(t, day(21), repo.gotTo)
}

func TestExecute_ClampsPastFromToToday(t *testing.T) {
	repo := &fakeAvailabilityRepo{dates: []time.Time{day(14)}}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{From: day(1), To: day(21)})
	require.NoError(t, err)

	// Прошедшие дни отсекаются: репозиторий опрашивается начиная с сегодня
	assert.Equal(t, day(14), repo.gotFrom)
	assert.Equal(t, day(14), resp.From)
}

func TestExecute_PeriodEntirelyInPast(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{From: day(1), To: day(5)})
	require.NoError(t, err)

	assert.Empty(t, resp.Dates)
	assert.Equal(t, 0, repo.called)
}

func TestExecute_ToBeforeFrom(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{})

	_, err := uc.Execute(context.Background(), &Request{From: day(21), To: day(15)})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestExecute_PeriodTooLong(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		From: day(15),
		To:   day(15).AddDate(2, 0, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestExecute_MissingBounds(t *testing.T) {
	uc := newUseCase(&fakeAvailabilityRepo{})

	_, err := uc.Execute(context.Background(), &Request{To: day(21)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeAvailabilityRepo{err: errors.New("connection reset")}
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{From: day(15), To: day(21)})
	assert.ErrorIs(t, err, ErrInternal)
}
