package service

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks AuditPublisher,RejectionPublisher,SealedCache

import (
	"context"

	audit "bordereau/pkg/platform/audit"
	"bordereau/pkg/requestcontext"
)

// AuditPublisher records chain of custody events. It fails closed: an error
// aborts the transaction it was called in.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RejectionPublisher records refused edits without blocking.
type RejectionPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// SealedCache caches SealedFields results per document and editor. Get
// returns the generation of the document on a miss; Put drops the entry
// when the document was invalidated since.
type SealedCache interface {
	Get(ctx context.Context, kind, id string, editor requestcontext.Editor) (fields []string, generation int64, ok bool, err error)
	Put(ctx context.Context, kind, id string, editor requestcontext.Editor, generation int64, fields []string) error
	Invalidate(ctx context.Context, kind, id string) error
}
