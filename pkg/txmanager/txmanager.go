package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/lashroom/scheduling-service/pkg/dbmetrics"
)

// serializationFailure код ошибки PostgreSQL при конфликте сериализуемых транзакций
const serializationFailure = "40001"

// сколько раз повторяем сериализуемую транзакцию при конфликте
const maxSerializableRetries = 3

// TxBeginner интерфейс источника транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager управляет транзакциями поверх обёрнутого метриками DB.
// Транзакция кладётся в контекст, репозитории достают её через dbmetrics.GetExecutor.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При serialization failure (SQLSTATE 40001) повторяет до maxSerializableRetries раз.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		lastErr = m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if lastErr == nil || !isSerializationFailure(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("serializable transaction failed after %d attempts: %w", maxSerializableRetries, lastErr)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithExecutor(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailure
	}
	return false
}
