// Package docstore persists bordereaux as JSON documents keyed by kind and
// id, with an in-memory and a PostgreSQL implementation of the same
// transactional boundary.
package docstore

import "context"

// Store persists documents of one kind.
//
// FindByID returns sentinel.ErrNotFound for unknown ids. Create returns
// sentinel.ErrConflict when the id is taken. Save returns
// sentinel.ErrNotFound when the document does not exist.
type Store[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, id string, doc *T) error
	Save(ctx context.Context, id string, doc *T) error
}

// Tx runs fn against a Store bound to one isolated transaction. A document
// read through that store cannot change under fn before fn returns.
// Implementations may wrap a database transaction or, in-memory, a lock.
type Tx[T any] interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store[T]) error) error
}

type lockKey struct{}

// WithLockKey names the document a transaction is about so in-memory
// transactions on different documents do not contend.
func WithLockKey(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, lockKey{}, id)
}

func lockKeyFrom(ctx context.Context) string {
	id, _ := ctx.Value(lockKey{}).(string)
	return id
}
