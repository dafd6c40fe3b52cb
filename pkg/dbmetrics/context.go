package dbmetrics

import "context"

type ctxKey int

const txExecutorKey ctxKey = iota

// WithExecutor кладет активную транзакцию в контекст.
// Репозитории достают её через GetExecutor и выполняют запросы в рамках транзакции.
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txExecutorKey, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть,
// иначе переданный по умолчанию executor (обычно сам DB).
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txExecutorKey).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txExecutorKey).(TxExecutor)
	return ok
}
