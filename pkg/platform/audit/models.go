package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance: every change
	// to a bordereau's content or signatures. These are part of the chain of
	// custody and must be persisted in the same transaction as the change.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers attempts the system refused, such as an edit
	// of sealed fields. They are emitted after the refused transaction and
	// never block the caller.
	CategorySecurity EventCategory = "security"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         string
	Category   EventCategory
	Timestamp  time.Time
	Action     string
	Kind       string
	DocumentID string
	// Stage is the signature stage for signing events.
	Stage string
	// Fields lists changed fields, or the sealed fields of a refused edit.
	Fields    []string
	ActorID   string
	RequestID string
	ClientIP  string
}

type AuditEvent string

const (
	EventBsdaCreated          AuditEvent = "bsda_created"
	EventBsdaUpdated          AuditEvent = "bsda_updated"
	EventBsdaSigned           AuditEvent = "bsda_signed"
	EventBsffCreated          AuditEvent = "bsff_created"
	EventBsffUpdated          AuditEvent = "bsff_updated"
	EventBsffSigned           AuditEvent = "bsff_signed"
	EventPackagingUpdated     AuditEvent = "bsff_packaging_updated"
	EventPackagingSigned      AuditEvent = "bsff_packaging_signed"
	EventSealedFieldsRejected AuditEvent = "sealed_fields_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventBsdaCreated:      CategoryCompliance,
	EventBsdaUpdated:      CategoryCompliance,
	EventBsdaSigned:       CategoryCompliance,
	EventBsffCreated:      CategoryCompliance,
	EventBsffUpdated:      CategoryCompliance,
	EventBsffSigned:       CategoryCompliance,
	EventPackagingUpdated: CategoryCompliance,
	EventPackagingSigned:  CategoryCompliance,

	EventSealedFieldsRejected: CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryCompliance so they are never dropped.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryCompliance
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
