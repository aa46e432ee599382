//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	audit "bordereau/pkg/platform/audit"
	"bordereau/pkg/platform/audit/store/postgres"
	txcontext "bordereau/pkg/platform/tx"
	"bordereau/pkg/testutil/containers"
)

type OutboxSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestOutboxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OutboxSuite))
}

func (s *OutboxSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = postgres.New(s.postgres.DB)
}

func (s *OutboxSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "outbox"))
}

func (s *OutboxSuite) TestAppendFetchMark() {
	ctx := context.Background()
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp:  time.Now(),
		Action:     string(audit.EventBsdaSigned),
		Kind:       "bsda",
		DocumentID: "BSDA-1",
		Stage:      "EMISSION",
		ActorID:    "user-1",
	}))

	pending, err := s.store.FetchPending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("bsda", pending[0].AggregateType)
	s.Equal("BSDA-1", pending[0].AggregateID)

	var payload postgres.Payload
	s.Require().NoError(json.Unmarshal(pending[0].Payload, &payload))
	s.Equal("compliance", payload.Category)
	s.Equal("EMISSION", payload.Stage)

	s.Require().NoError(s.store.MarkPublished(ctx, []uuid.UUID{pending[0].ID}, time.Now()))

	pending, err = s.store.FetchPending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *OutboxSuite) TestAppendJoinsCallerTransaction() {
	ctx := context.Background()

	tx, err := s.postgres.DB.BeginTx(ctx, &sql.TxOptions{})
	s.Require().NoError(err)
	s.Require().NoError(s.store.Append(txcontext.WithTx(ctx, tx), audit.Event{
		Action:     string(audit.EventBsdaUpdated),
		Kind:       "bsda",
		DocumentID: "BSDA-1",
	}))
	s.Require().NoError(tx.Rollback())

	pending, err := s.store.FetchPending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}
