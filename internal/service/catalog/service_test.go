package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashroom/scheduling-service/internal/domain"
)

type fakeServiceRepo struct {
	services []*domain.Service
	err      error
}

func (f *fakeServiceRepo) ListActive(_ context.Context) ([]*domain.Service, error) {
	return f.services, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestListActive_ReturnsServices(t *testing.T) {
	repo := &fakeServiceRepo{services: []*domain.Service{
		{ID: 1, Name: "Классическое наращивание", DurationMinutes: 120, Price: 2500, Active: true},
		{ID: 2, Name: "Снятие ресниц", DurationMinutes: 30, Price: 500, Active: true},
	}}

	svc := NewService(repo, noopLogger{})

	resp, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Services, 2)
	assert.Equal(t, int64(1), resp.Services[0].ID)
	assert.Equal(t, "Классическое наращивание", resp.Services[0].Name)
	assert.Equal(t, 120, resp.Services[0].DurationMinutes)
}

func TestListActive_EmptyCatalog(t *testing.T) {
	svc := NewService(&fakeServiceRepo{}, noopLogger{})

	resp, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	assert.Empty(t, resp.Services)
}

func TestListActive_RepositoryError(t *testing.T) {
	repo := &fakeServiceRepo{err: errors.New("connection reset")}
	svc := NewService(repo, noopLogger{})

	_, err := svc.ListActive(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
