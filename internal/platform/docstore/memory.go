package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	dErrors "bordereau/pkg/domain-errors"
	"bordereau/pkg/platform/sentinel"
)

// Memory keeps encoded documents so callers never share pointers with the
// store.
type Memory[T any] struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{docs: make(map[string][]byte)}
}

func (m *Memory[T]) FindByID(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	raw, ok := m.docs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &doc, nil
}

func (m *Memory[T]) Create(_ context.Context, id string, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[id]; exists {
		return fmt.Errorf("document %s: %w", id, sentinel.ErrConflict)
	}
	m.docs[id] = raw
	return nil
}

func (m *Memory[T]) Save(_ context.Context, id string, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[id]; !exists {
		return fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	m.docs[id] = raw
	return nil
}

// numShards spreads in-memory transactions over independent locks keyed by
// document id.
const numShards = 128

// defaultTxTimeout is the maximum duration of a transaction.
const defaultTxTimeout = 5 * time.Second

// ShardedTx serializes transactions on the same document with sharded
// mutexes. Writes are not rolled back: callers validate first and write last.
type ShardedTx[T any] struct {
	shards  [numShards]sync.Mutex
	store   Store[T]
	timeout time.Duration
}

func NewShardedTx[T any](store Store[T], timeout time.Duration) *ShardedTx[T] {
	return &ShardedTx[T]{store: store, timeout: timeout}
}

func (t *ShardedTx[T]) RunInTx(ctx context.Context, fn func(ctx context.Context, store Store[T]) error) error {
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

	shard := t.selectShard(ctx)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx, t.store)
}

func (t *ShardedTx[T]) selectShard(ctx context.Context) int {
	if id := lockKeyFrom(ctx); id != "" {
		return int(hashString(id) % numShards)
	}
	return 0
}

// hashString is FNV-1a.
func hashString(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
