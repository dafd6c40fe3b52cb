package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/lashroom/scheduling-service/pkg/metrics"
)

// DBExecutor интерфейс выполнения запросов к БД.
// Реализуется *sql.DB, *sql.Tx и обёртками из этого пакета,
// поэтому репозитории не знают, есть метрики или нет.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// DB обёртка над *sql.DB, записывающая метрики каждого запроса
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает *sql.DB сбором метрик запросов
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор
// метрик connection pool. Остановка — закрытием stopCh.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

// поллинг статистики пула каждые 15 секунд
func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
			d.metrics.DBConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
			d.metrics.DBConnections.WithLabelValues("idle").Set(float64(stats.Idle))
		}
	}
}

func (d *DB) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	d.metrics.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	d.metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ExecContext выполняет запрос с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return result, err
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрик
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, nil)
	return row
}

// BeginTx начинает транзакцию; её запросы тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observe("begin_tx", start, err)
	if err != nil {
		return nil, err
	}
	return &metricsTx{tx: tx, db: d}, nil
}

// metricsTx транзакция с записью метрик каждого запроса
type metricsTx struct {
	tx *sql.Tx
	db *DB
}

func (t *metricsTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.db.observe("tx_exec", start, err)
	return result, err
}

func (t *metricsTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.db.observe("tx_query", start, err)
	return rows, err
}

func (t *metricsTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.db.observe("tx_query_row", start, nil)
	return row
}

func (t *metricsTx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.db.observe("tx_commit", start, err)
	return err
}

func (t *metricsTx) Rollback() error {
	return t.tx.Rollback()
}
