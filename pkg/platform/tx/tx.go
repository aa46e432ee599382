// Package tx carries a SQL transaction through a context so that stores
// called inside it join the same unit of work.
package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

// Executor is the part of *sql.DB and *sql.Tx the stores use.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx returns ctx carrying tx. A nil tx leaves ctx unchanged.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, tx)
}

func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(ctxKey{}).(*sql.Tx)
	return tx, ok
}

// Or returns the transaction in ctx, or db when there is none. The boolean
// reports whether a transaction was found.
func Or(ctx context.Context, db *sql.DB) (Executor, bool) {
	if tx, ok := From(ctx); ok {
		return tx, true
	}
	return db, false
}
