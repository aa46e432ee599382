package compliance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "bordereau/pkg/platform/audit"
	"bordereau/pkg/platform/audit/store/memory"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func TestPublisher_Emit(t *testing.T) {
	ctx := context.Background()

	t.Run("persists with timestamp and category", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		pub := New(store)

		err := pub.Emit(ctx, audit.Event{
			Action:     string(audit.EventBsdaSigned),
			Kind:       "bsda",
			DocumentID: "BSDA-1",
			Stage:      "EMISSION",
		})
		require.NoError(t, err)

		events, err := store.ListByDocument(ctx, "bsda", "BSDA-1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.False(t, events[0].Timestamp.IsZero())
		assert.NotEmpty(t, events[0].ID)
	})

	t.Run("requires action and document", func(t *testing.T) {
		pub := New(memory.NewInMemoryStore())

		assert.Error(t, pub.Emit(ctx, audit.Event{DocumentID: "BSDA-1"}))
		assert.Error(t, pub.Emit(ctx, audit.Event{Action: string(audit.EventBsdaSigned)}))
	})

	t.Run("store failure fails the caller", func(t *testing.T) {
		pub := New(failingStore{})

		err := pub.Emit(ctx, audit.Event{Action: string(audit.EventBsdaUpdated), DocumentID: "BSDA-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}
