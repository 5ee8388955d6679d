package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// DBTxKey is the context key under which the current transaction is stored.
const DBTxKey contextKey = "db_tx"

// TxFromContext retrieves the current transaction from context, or nil if the
// call is not running inside a unit of work.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(DBTxKey).(pgx.Tx)
	return tx
}

// TxRunner executes fn as one atomic unit of work. The transaction is placed
// in the context handed to fn, so repository calls made with that context all
// share the transaction and the row locks it holds. The transaction commits
// when fn returns nil and rolls back on error or panic; either way every exit
// path releases the connection and its locks.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// NewTxRunner returns a TxRunner backed by pool. Nested calls join the
// enclosing transaction rather than opening a second one.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		if TxFromContext(ctx) != nil {
			return fn(ctx)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		if err := fn(context.WithValue(ctx, DBTxKey, tx)); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	}
}

// PassthroughRunner runs fn directly with no transaction. Used in tests where
// repositories are in-memory.
func PassthroughRunner() TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
}
