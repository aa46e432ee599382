package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	dErrors "bordereau/pkg/domain-errors"
	"bordereau/pkg/platform/sentinel"
	txcontext "bordereau/pkg/platform/tx"
)

// Postgres stores documents of one kind in the documents table.
type Postgres[T any] struct {
	db   *sql.DB
	kind string
}

func NewPostgres[T any](db *sql.DB, kind string) *Postgres[T] {
	return &Postgres[T]{db: db, kind: kind}
}

func (s *Postgres[T]) execer(ctx context.Context) (txcontext.Executor, bool) {
	return txcontext.Or(ctx, s.db)
}

// FindByID locks the row when called inside a transaction.
func (s *Postgres[T]) FindByID(ctx context.Context, id string) (*T, error) {
	query := `SELECT body FROM documents WHERE kind = $1 AND id = $2`
	db, inTx := s.execer(ctx)
	if inTx {
		query += ` FOR UPDATE`
	}

	var raw []byte
	err := db.QueryRowContext(ctx, query, s.kind, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", id, err)
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &doc, nil
}

func (s *Postgres[T]) Create(ctx context.Context, id string, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", id, err)
	}
	db, _ := s.execer(ctx)
	res, err := db.ExecContext(ctx, `
		INSERT INTO documents (kind, id, body)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, id) DO NOTHING
	`, s.kind, id, raw)
	if err != nil {
		return fmt.Errorf("insert document %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("document %s: %w", id, sentinel.ErrConflict)
	}
	return nil
}

func (s *Postgres[T]) Save(ctx context.Context, id string, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", id, err)
	}
	db, _ := s.execer(ctx)
	res, err := db.ExecContext(ctx, `
		UPDATE documents
		SET body = $3, version = version + 1, updated_at = now()
		WHERE kind = $1 AND id = $2
	`, s.kind, id, raw)
	if err != nil {
		return fmt.Errorf("update document %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

// PostgresTx runs transactions at SERIALIZABLE isolation. The transaction is
// also put in the context handed to fn, so stores sharing the database
// (audit outbox) write atomically with the document.
type PostgresTx[T any] struct {
	db      *sql.DB
	store   *Postgres[T]
	timeout time.Duration
}

func NewPostgresTx[T any](db *sql.DB, store *Postgres[T], timeout time.Duration) *PostgresTx[T] {
	return &PostgresTx[T]{db: db, store: store, timeout: timeout}
}

func (t *PostgresTx[T]) RunInTx(ctx context.Context, fn func(ctx context.Context, store Store[T]) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.store); err != nil {
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// Serialization failures and deadlocks are reported as conflicts: the caller
// re-reads the document and decides again.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqSerializationFailure, pqDeadlockDetected:
			return fmt.Errorf("%w: %w", sentinel.ErrConflict, err)
		}
	}
	return err
}
