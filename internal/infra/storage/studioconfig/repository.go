package studioconfig

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

const table = "studio_config"

// configID конфигурация студии хранится в единственной строке
const configID = 1

var columns = []string{
	"id",
	"slot_step_minutes",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации студии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает конфигурацию студии
func (r *Repository) Get(ctx context.Context) (*domain.StudioConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": configID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.StudioConfig
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.SlotStepMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time
	return &cfg, nil
}

// Upsert сохраняет конфигурацию студии, создавая строку при первом обращении
func (r *Repository) Upsert(ctx context.Context, cfg *domain.StudioConfig) (*domain.StudioConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "slot_step_minutes", "advance_booking_days", "min_booking_notice_minutes").
		Values(configID, cfg.SlotStepMinutes, cfg.AdvanceBookingDays, cfg.MinBookingNoticeMinutes).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time
	return cfg, nil
}
