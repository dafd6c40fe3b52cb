package availability

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

const table = "availability"

var columns = []string{
	"id",
	"date",
	"start_minutes",
	"end_minutes",
	"kind",
	"consumed",
	"consumed_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий интервалов доступности мастера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый интервал доступности.
// Exclusion constraint БД отклоняет пересекающиеся интервалы независимо от
// советующей проверки конфликтов — при нарушении возвращается ErrIntervalOverlap.
func (r *Repository) Create(ctx context.Context, interval *domain.AvailabilityInterval) (*domain.AvailabilityInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("date", "start_minutes", "end_minutes", "kind").
		Values(interval.Date, interval.Range.Start, interval.Range.End, interval.Kind).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&interval.ID, &createdAt, &updatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrIntervalOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	interval.CreatedAt = createdAt.Time
	interval.UpdatedAt = updatedAt.Time
	return interval, nil
}

// GetByID получает интервал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	interval, err := r.scanInterval(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIntervalNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan interval: %v", ErrScanRow, err)
	}
	return interval, nil
}

// ListByDate получает все интервалы на дату, отсортированные по началу.
// Внутри транзакции добавляет FOR UPDATE для блокировки строк дня.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_minutes ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanIntervals(rows)
}

// ListDatesWithBookable возвращает даты периода, на которых есть свободные
// OPEN-интервалы. Используется календарём клиента для подсветки доступных дней.
func (r *Repository) ListDatesWithBookable(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT date").
		From(table).
		Where(squirrel.Eq{"kind": domain.IntervalOpen, "consumed": false}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDatesWithBookable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDatesWithBookable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: ListDatesWithBookable - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDatesWithBookable - rows error: %v", ErrScanRow, err)
	}
	return dates, nil
}

// MarkConsumed помечает интервал занятым указанной записью.
// Обновляет только свободный интервал — повторный вызов ничего не меняет.
func (r *Repository) MarkConsumed(ctx context.Context, id int64, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("consumed", true).
		Set("consumed_by", bookingID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "consumed": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkConsumed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkConsumed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkConsumed - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrIntervalNotFound
	}
	return nil
}

// Release освобождает интервал, занятый указанной записью.
// Условие consumed_by = bookingID повторяет защиту от двойного освобождения
// на уровне SQL: интервал, занятый другой записью, не трогается.
func (r *Repository) Release(ctx context.Context, id int64, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("consumed", false).
		Set("consumed_by", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "consumed": true, "consumed_by": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotLinked
	}
	return nil
}

// Delete удаляет интервал.
// Проверка «занятый интервал удалять нельзя» живёт в usecase, но условие
// consumed = false продублировано здесь, чтобы гонка удаления с подтверждением
// не снесла живое обязательство.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "consumed": false}).
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
		return ErrIntervalNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanInterval(row rowScanner) (*domain.AvailabilityInterval, error) {
	var interval domain.AvailabilityInterval
	var startMinutes, endMinutes int
	var consumedBy sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&interval.ID,
		&interval.Date,
		&startMinutes,
		&endMinutes,
		&interval.Kind,
		&interval.Consumed,
		&consumedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	interval.Range = domain.TimeRange{Start: startMinutes, End: endMinutes}
	if consumedBy.Valid {
		interval.ConsumedBy = &consumedBy.Int64
	}
	interval.CreatedAt = createdAt.Time
	interval.UpdatedAt = updatedAt.Time
	return &interval, nil
}

func (r *Repository) scanIntervals(rows *sql.Rows) ([]*domain.AvailabilityInterval, error) {
	intervals := make([]*domain.AvailabilityInterval, 0)
	for rows.Next() {
		interval, err := r.scanInterval(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan interval: %v", ErrScanRow, err)
		}
		intervals = append(intervals, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return intervals, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == exclusionViolation
	}
	return false
}
