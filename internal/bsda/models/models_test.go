package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bordereau/internal/edition"
)

func ptr[T any](v T) *T { return &v }

func TestSign(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("walks the status machine", func(t *testing.T) {
		b := &Bsda{ID: "BSDA-1", Status: StatusInitial}

		require.NoError(t, b.Sign(edition.SignatureEmission, "emitter", at))
		assert.Equal(t, StatusSignedByProducer, b.Status)
		require.NoError(t, b.Sign(edition.SignatureWork, "worker", at))
		assert.Equal(t, StatusSignedByWorker, b.Status)
		require.NoError(t, b.Sign(edition.SignatureTransport, "transporter", at))
		assert.Equal(t, StatusSent, b.Status)
		require.NoError(t, b.Sign(edition.SignatureOperation, "destination", at))
		assert.Equal(t, StatusProcessed, b.Status)
	})

	t.Run("a slot is signed once", func(t *testing.T) {
		b := &Bsda{Status: StatusInitial}
		require.NoError(t, b.Sign(edition.SignatureEmission, "emitter", at))

		err := b.Sign(edition.SignatureEmission, "someone else", at.Add(time.Hour))
		assert.ErrorIs(t, err, ErrAlreadySigned)
		assert.Equal(t, "emitter", b.Signatures.Emission.Author)
		assert.True(t, b.Signatures.Emission.Date.Equal(at))
	})

	t.Run("skipped stages cannot be signed afterwards", func(t *testing.T) {
		b := &Bsda{Status: StatusInitial}
		require.NoError(t, b.Sign(edition.SignatureTransport, "transporter", at))

		assert.ErrorIs(t, b.Sign(edition.SignatureEmission, "emitter", at), ErrStagePassed)
		assert.ErrorIs(t, b.Sign(edition.SignatureWork, "worker", at), ErrStagePassed)
		assert.Nil(t, b.Signatures.Emission)
	})

	t.Run("stages outside the chain", func(t *testing.T) {
		b := &Bsda{}
		assert.ErrorIs(t, b.Sign(edition.SignatureReception, "x", at), ErrUnknownStage)
	})

	t.Run("refused waste", func(t *testing.T) {
		b := &Bsda{Content: Content{Destination: &Destination{
			Reception: &Reception{AcceptationStatus: ptr(AcceptationRefused)},
		}}}
		require.NoError(t, b.Sign(edition.SignatureOperation, "destination", at))
		assert.Equal(t, StatusRefused, b.Status)
	})
}

func TestToInput(t *testing.T) {
	b := &Bsda{
		Content: Content{
			Type:  ptr(TypeGathering),
			Waste: &Waste{Code: ptr("06 07 01*")},
		},
		Grouping:   []Ref{{ID: "BSDA-A", WasteCode: "06 07 01*"}, {ID: "BSDA-B"}},
		Forwarding: &Ref{ID: "BSDA-C"},
	}

	in := ToInput(b)

	assert.Equal(t, []string{"BSDA-A", "BSDA-B"}, in.Grouping)
	assert.Equal(t, "BSDA-C", *in.Forwarding)
	assert.Equal(t, "06 07 01*", *in.Waste.Code)

	rec := in.Record()
	assert.Equal(t, []any{"BSDA-A", "BSDA-B"}, rec["grouping"])
	assert.Equal(t, "BSDA-C", rec["forwarding"])
	assert.NotContains(t, rec, "emitter")
}

func TestHasWorker(t *testing.T) {
	assert.True(t, Content{Type: ptr(TypeOtherCollections)}.HasWorker())
	assert.False(t, Content{Type: ptr(TypeOtherCollections), Worker: &Worker{IsDisabled: ptr(true)}}.HasWorker())
	assert.False(t, Content{Type: ptr(TypeCollection2710)}.HasWorker())
	assert.False(t, Content{}.HasWorker())
}
