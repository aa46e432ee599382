// Package worker relays outbox entries to the broker.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bordereau/internal/platform/kafka"
	"bordereau/internal/platform/metrics"
	"bordereau/pkg/platform/audit/store/postgres"
)

// Outbox is the relay's view of the outbox table.
type Outbox interface {
	FetchPending(ctx context.Context, limit int) ([]postgres.Entry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Publisher writes a batch to the broker.
type Publisher interface {
	Publish(ctx context.Context, msgs []kafka.Message) error
}

// Worker polls the outbox and publishes pending entries. Delivery is at
// least once: an entry published but not yet marked is sent again after a
// crash, so consumers deduplicate on the payload id.
type Worker struct {
	outbox    Outbox
	publisher Publisher
	interval  time.Duration
	batch     int
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batch = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func NewWorker(outbox Outbox, publisher Publisher, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		publisher: publisher,
		interval:  time.Second,
		batch:     100,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run relays until ctx is done. Batch failures are logged and retried on
// the next tick.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for {
				n, err := w.RelayBatch(ctx)
				if err != nil {
					if ctx.Err() == nil {
						w.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
					}
					break
				}
				if n < w.batch {
					break
				}
			}
		}
	}
}

// RelayBatch publishes one batch and marks it. It returns the number of
// entries relayed.
func (w *Worker) RelayBatch(ctx context.Context) (int, error) {
	entries, err := w.outbox.FetchPending(ctx, w.batch)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	msgs := make([]kafka.Message, len(entries))
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		msgs[i] = kafka.Message{
			Key:   []byte(e.AggregateType + ":" + e.AggregateID),
			Value: e.Payload,
		}
		ids[i] = e.ID
	}

	if err := w.publisher.Publish(ctx, msgs); err != nil {
		if w.metrics != nil {
			w.metrics.IncrementOutboxFailure()
		}
		return 0, err
	}
	if err := w.outbox.MarkPublished(ctx, ids, time.Now()); err != nil {
		return 0, err
	}
	if w.metrics != nil {
		w.metrics.AddOutboxPublished(len(entries))
	}
	return len(entries), nil
}
