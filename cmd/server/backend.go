package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"bordereau/internal/bsda"
	bsdamodels "bordereau/internal/bsda/models"
	bsdaservice "bordereau/internal/bsda/service"
	"bordereau/internal/bsff"
	bsffmodels "bordereau/internal/bsff/models"
	bsffservice "bordereau/internal/bsff/service"
	"bordereau/internal/platform/config"
	"bordereau/internal/platform/docstore"
	"bordereau/internal/platform/kafka"
	"bordereau/internal/platform/metrics"
	"bordereau/migrations"
	audit "bordereau/pkg/platform/audit"
	auditmemory "bordereau/pkg/platform/audit/store/memory"
	auditpostgres "bordereau/pkg/platform/audit/store/postgres"
	"bordereau/pkg/platform/audit/worker"
)

// backend groups the stores of one persistence mode.
type backend struct {
	db     *sql.DB
	outbox *auditpostgres.Store
	audit  audit.Store
	bsda   bsdaservice.Store
	bsdaTx bsdaservice.StoreTx
	bsff   bsffservice.Store
	bsffTx bsffservice.StoreTx
}

// openBackend selects PostgreSQL when DATABASE_URL is set, the in-memory
// stores otherwise.
func openBackend(ctx context.Context, cfg config.Server, log *slog.Logger) (*backend, error) {
	if cfg.Postgres.URL == "" {
		log.Warn("DATABASE_URL not set, documents and audit events are kept in memory")
		bsdaStore := docstore.NewMemory[bsdamodels.Bsda]()
		bsffStore := docstore.NewMemory[bsffmodels.Bsff]()
		return &backend{
			audit:  auditmemory.NewInMemoryStore(),
			bsda:   bsdaStore,
			bsdaTx: docstore.NewShardedTx[bsdamodels.Bsda](bsdaStore, cfg.Postgres.TxTimeout),
			bsff:   bsffStore,
			bsffTx: docstore.NewShardedTx[bsffmodels.Bsff](bsffStore, cfg.Postgres.TxTimeout),
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	bsdaStore := docstore.NewPostgres[bsdamodels.Bsda](db, bsda.Kind)
	bsffStore := docstore.NewPostgres[bsffmodels.Bsff](db, bsff.Kind)
	outbox := auditpostgres.New(db)
	return &backend{
		db:     db,
		outbox: outbox,
		audit:  outbox,
		bsda:   bsdaStore,
		bsdaTx: docstore.NewPostgresTx(db, bsdaStore, cfg.Postgres.TxTimeout),
		bsff:   bsffStore,
		bsffTx: docstore.NewPostgresTx(db, bsffStore, cfg.Postgres.TxTimeout),
	}, nil
}

func (b *backend) Close() {
	if b.db != nil {
		_ = b.db.Close()
	}
}

type relay struct {
	worker   *worker.Worker
	producer *kafka.Producer
}

func (r *relay) close() {
	r.producer.Close()
}

// newRelay starts nothing and returns nil unless both the outbox and Kafka
// are configured.
func newRelay(ctx context.Context, cfg config.Server, b *backend, m *metrics.Metrics, log *slog.Logger) (*relay, error) {
	if b.outbox == nil || len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := kafka.NewProducer(cfg.Kafka, log)
	if err != nil {
		return nil, err
	}
	if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.Replication); err != nil {
		producer.Close()
		return nil, err
	}
	w := worker.NewWorker(b.outbox, producer,
		worker.WithInterval(cfg.Kafka.RelayInterval),
		worker.WithBatchSize(cfg.Kafka.RelayBatch),
		worker.WithLogger(log),
		worker.WithMetrics(m),
	)
	return &relay{worker: w, producer: producer}, nil
}
