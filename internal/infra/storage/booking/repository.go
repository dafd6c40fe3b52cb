package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lashroom/scheduling-service/internal/domain"
	"github.com/lashroom/scheduling-service/pkg/dbmetrics"
	"github.com/lashroom/scheduling-service/pkg/psqlbuilder"
)

// exclusionViolation код ошибки PostgreSQL при нарушении exclusion constraint
const exclusionViolation = "23P01"

const table = "bookings"

var columns = []string{
	"id",
	"service_id",
	"date",
	"start_minutes",
	"end_minutes",
	"status",
	"client_name",
	"client_phone",
	"notes",
	"service_name",
	"service_price",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Partial exclusion constraint по активным статусам отклоняет пересекающиеся
// записи, даже если советующая проверка конфликтов их пропустила.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"service_id",
			"date",
			"start_minutes",
			"end_minutes",
			"status",
			"client_name",
			"client_phone",
			"notes",
			"service_name",
			"service_price",
		).
		Values(
			b.ServiceID,
			b.Date,
			b.Range.Start,
			b.Range.End,
			b.Status,
			b.ClientName,
			b.ClientPhone,
			b.Notes,
			b.ServiceName,
			b.ServicePrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrBookingOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// ListByDate получает записи на дату, отсортированные по началу.
// Внутри транзакции добавляет FOR UPDATE — так создание и подтверждение
// записей блокируют строки дня друг от друга.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("start_minutes ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, selectBuilder, "ListByDate")
}

// ListWithFilter получает записи с гибкой фильтрацией для мастера:
// период, статус, телефон клиента, включение неактивных записей.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.ClientPhone != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_phone": *filter.ClientPhone})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	// Для одного дня сортируем по времени, для периода — сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_minutes ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date DESC, start_minutes DESC")
	}

	return r.list(ctx, selectBuilder, "ListWithFilter")
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Cancel отменяет запись с указанием причины (причина попадает в notes)
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", status).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if reason != "" {
		updateBuilder = updateBuilder.Set("notes", reason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Delete удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var startMinutes, endMinutes int
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&b.Date,
		&startMinutes,
		&endMinutes,
		&b.Status,
		&b.ClientName,
		&b.ClientPhone,
		&b.Notes,
		&b.ServiceName,
		&b.ServicePrice,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Range = domain.TimeRange{Start: startMinutes, End: endMinutes}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == exclusionViolation
	}
	return false
}
