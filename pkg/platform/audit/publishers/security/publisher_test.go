package security

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "bordereau/pkg/platform/audit"
	"bordereau/pkg/platform/audit/store/memory"
)

func rejected(id string) audit.Event {
	return audit.Event{
		Action:     string(audit.EventSealedFieldsRejected),
		Kind:       "bsda",
		DocumentID: id,
		Fields:     []string{"wasteCode"},
	}
}

func TestPublisher_Flush(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	pub := New(store)

	pub.Emit(ctx, rejected("BSDA-1"))
	pub.Emit(ctx, rejected("BSDA-2"))
	assert.Equal(t, 2, pub.Pending())

	assert.Equal(t, 2, pub.Flush(ctx))
	assert.Zero(t, pub.Pending())
	assert.Equal(t, 0, pub.Flush(ctx))

	events, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
	assert.Equal(t, "BSDA-1", events[0].DocumentID)
}

func TestPublisher_DropsOldestWhenFull(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	pub := New(store, WithCapacity(3))

	for i := range 5 {
		pub.Emit(ctx, rejected(fmt.Sprintf("BSDA-%d", i)))
	}
	pub.Flush(ctx)

	events, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "BSDA-2", events[0].DocumentID)
	assert.Equal(t, int64(2), pub.Dropped())
}

func TestPublisher_RunFlushesOnShutdown(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := New(store, WithFlushInterval(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- pub.Run(ctx) }()

	pub.Emit(ctx, rejected("BSDA-1"))
	cancel()
	require.NoError(t, <-done)

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
