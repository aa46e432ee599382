// Package security publishes refused-action events without blocking the
// caller. Events are buffered in memory and flushed to the store in the
// background; when the buffer is full the oldest events are dropped.
//
// Use for: sealed_fields_rejected
package security

import (
	"context"
	"log/slog"
	"time"

	audit "bordereau/pkg/platform/audit"
)

const (
	defaultFlushInterval = time.Second
	defaultBatchSize     = 100
)

// Publisher buffers events and flushes them with Run.
type Publisher struct {
	store    audit.Store
	buffer   *ring[audit.Event]
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

// Option configures the Publisher.
type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithCapacity(capacity int) Option {
	return func(p *Publisher) {
		p.buffer = newRing[audit.Event](capacity)
	}
}

func WithFlushInterval(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.interval = d
		}
	}
}

func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:    store,
		buffer:   newRing[audit.Event](0),
		logger:   slog.Default(),
		interval: defaultFlushInterval,
		batch:    defaultBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit enqueues event. It never fails.
func (p *Publisher) Emit(_ context.Context, event audit.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = audit.CategorySecurity
	p.buffer.push(event)
}

// Run flushes the buffer every interval until ctx is done, then flushes
// what is left.
func (p *Publisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Flush(context.WithoutCancel(ctx))
			return nil
		case <-ticker.C:
			p.Flush(ctx)
		}
	}
}

// Flush drains the buffer into the store. Events that fail to persist are
// logged and dropped.
func (p *Publisher) Flush(ctx context.Context) int {
	written := 0
	for {
		events := p.buffer.pop(p.batch)
		if len(events) == 0 {
			return written
		}
		for _, e := range events {
			if err := p.store.Append(ctx, e); err != nil {
				p.logger.WarnContext(ctx, "security audit dropped",
					"action", e.Action,
					"document_id", e.DocumentID,
					"error", err,
				)
				continue
			}
			written++
		}
	}
}

// Pending returns how many events wait for the next flush.
func (p *Publisher) Pending() int {
	return p.buffer.len()
}

// Dropped returns how many events were evicted from a full buffer.
func (p *Publisher) Dropped() int64 {
	return p.buffer.dropped()
}
