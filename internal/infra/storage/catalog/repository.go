package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/pkg/dbmetrics"
	"github.com/lashroom/scheduling-service/pkg/psqlbuilder"
)

const table = "services"

var columns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanService(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}
	return s, nil
}

// ListActive получает все активные услуги каталога
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := r.scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan service: %v", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}
	return services, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanService(row rowScanner) (*domain.Service, error) {
	var s domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.DurationMinutes,
		&s.Price,
		&s.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}
