package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bordereau/internal/bsda"
	"bordereau/internal/bsda/models"
	"bordereau/internal/edition"
	"bordereau/internal/platform/docstore"
	"bordereau/internal/platform/metrics"
	dErrors "bordereau/pkg/domain-errors"
	audit "bordereau/pkg/platform/audit"
	"bordereau/pkg/platform/sentinel"
	"bordereau/pkg/requestcontext"
)

// Store reads BSDAs outside of a transaction.
type Store interface {
	FindByID(ctx context.Context, id string) (*models.Bsda, error)
}

// StoreTx runs a read-check-write sequence in one isolated transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store docstore.Store[models.Bsda]) error) error
}

// Service is the write boundary of BSDAs: every edit is checked against the
// sealed fields of the stored document in the transaction that persists it.
type Service struct {
	store      Store
	tx         StoreTx
	auditor    AuditPublisher
	rejections RejectionPublisher
	cache      SealedCache
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithRejectionPublisher(publisher RejectionPublisher) Option {
	return func(s *Service) {
		s.rejections = publisher
	}
}

func WithSealedCache(cache SealedCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func New(store Store, tx StoreTx, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tx:     tx,
		logger: slog.Default(),
		tracer: otel.Tracer("bordereau/bsda"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new BSDA in INITIAL state. Grouped and forwarded BSDAs
// must exist.
func (s *Service) Create(ctx context.Context, input models.Input) (*models.Bsda, error) {
	ctx, span := s.tracer.Start(ctx, "bsda.Create")
	defer span.End()

	now := requestcontext.Now(ctx)
	doc := &models.Bsda{
		ID:        newID(now),
		Status:    models.StatusInitial,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	span.SetAttributes(attribute.String("bsda.id", doc.ID))

	err := s.tx.RunInTx(docstore.WithLockKey(ctx, doc.ID), func(ctx context.Context, store docstore.Store[models.Bsda]) error {
		if err := resolveRelations(ctx, store, doc, input, true, true); err != nil {
			return err
		}
		if err := store.Create(ctx, doc.ID, doc); err != nil {
			return wrapStoreErr(err, "failed to create bsda")
		}
		return s.emit(ctx, audit.EventBsdaCreated, doc.ID, "", nil)
	})
	if err != nil {
		return nil, s.fail(span, wrapTxErr(err))
	}

	s.logger.InfoContext(ctx, "bsda created",
		"bsda_id", doc.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return doc, nil
}

// Get returns a stored BSDA.
func (s *Service) Get(ctx context.Context, id string) (*models.Bsda, error) {
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to load bsda")
	}
	return doc, nil
}

// Update applies the fields of input that differ from the stored document.
// It fails with dErrors.CodeSealedFields, listing every sealed field the
// edit touches, and then writes nothing.
func (s *Service) Update(ctx context.Context, id string, input models.Input) (*models.Bsda, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "bsda.Update", trace.WithAttributes(attribute.String("bsda.id", id)))
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveUpdate(bsda.Kind, start)
	}

	editor := requestcontext.Actor(ctx)
	var (
		updated *models.Bsda
		changed []string
	)
	err := s.tx.RunInTx(docstore.WithLockKey(ctx, id), func(ctx context.Context, store docstore.Store[models.Bsda]) error {
		doc, err := store.FindByID(ctx, id)
		if err != nil {
			return wrapStoreErr(err, "failed to load bsda")
		}

		changes, err := bsda.Check(doc, input, editor)
		if err != nil {
			return err
		}
		changed = changes.Fields
		if changes.Empty() {
			updated = doc
			return nil
		}

		if err := apply(doc, changes); err != nil {
			return err
		}
		if err := resolveRelations(ctx, store, doc, input, changes.Has(string(bsda.FieldGrouping)), changes.Has(string(bsda.FieldForwarding))); err != nil {
			return err
		}
		doc.UpdatedAt = requestcontext.Now(ctx)
		if err := store.Save(ctx, id, doc); err != nil {
			return wrapStoreErr(err, "failed to save bsda")
		}
		if err := s.emit(ctx, audit.EventBsdaUpdated, id, "", changes.Fields); err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		if sfe, ok := edition.AsSealedFields(err); ok {
			s.rejected(ctx, id, editor, sfe)
		}
		return nil, s.fail(span, wrapTxErr(err))
	}

	span.SetAttributes(attribute.Int("bsda.changed_fields", len(changed)))
	if len(changed) == 0 {
		s.incrementCheck(metrics.OutcomeNoop)
		return updated, nil
	}
	s.incrementCheck(metrics.OutcomeAccepted)
	s.invalidate(ctx, id)
	s.logger.InfoContext(ctx, "bsda updated",
		"bsda_id", id,
		"fields", changed,
		"request_id", requestcontext.RequestID(ctx),
	)
	return updated, nil
}

// Sign captures the signature of stage for the current editor.
func (s *Service) Sign(ctx context.Context, id string, stage edition.SignatureType) (*models.Bsda, error) {
	ctx, span := s.tracer.Start(ctx, "bsda.Sign", trace.WithAttributes(
		attribute.String("bsda.id", id),
		attribute.String("bsda.stage", stage.String()),
	))
	defer span.End()

	editor := requestcontext.Actor(ctx)
	var signed *models.Bsda
	err := s.tx.RunInTx(docstore.WithLockKey(ctx, id), func(ctx context.Context, store docstore.Store[models.Bsda]) error {
		doc, err := store.FindByID(ctx, id)
		if err != nil {
			return wrapStoreErr(err, "failed to load bsda")
		}
		if err := doc.Sign(stage, editor.UserID, requestcontext.Now(ctx)); err != nil {
			return wrapSignErr(err, stage)
		}
		if err := store.Save(ctx, id, doc); err != nil {
			return wrapStoreErr(err, "failed to save bsda")
		}
		if err := s.emit(ctx, audit.EventBsdaSigned, id, stage.String(), nil); err != nil {
			return err
		}
		signed = doc
		return nil
	})
	if err != nil {
		return nil, s.fail(span, wrapTxErr(err))
	}

	if s.metrics != nil {
		s.metrics.IncrementSignature(bsda.Kind, stage.String())
	}
	s.invalidate(ctx, id)
	s.logger.InfoContext(ctx, "bsda signed",
		"bsda_id", id,
		"stage", stage,
		"status", signed.Status,
		"request_id", requestcontext.RequestID(ctx),
	)
	return signed, nil
}

// SealedFields lists the fields the current editor can no longer change.
func (s *Service) SealedFields(ctx context.Context, id string) ([]string, error) {
	editor := requestcontext.Actor(ctx)
	var generation int64
	if s.cache != nil {
		fields, gen, ok, err := s.cache.Get(ctx, bsda.Kind, id, editor)
		if err != nil {
			s.logger.WarnContext(ctx, "sealed fields cache read failed", "bsda_id", id, "error", err)
		}
		if s.metrics != nil && err == nil {
			s.metrics.IncrementCacheLookup(ok)
		}
		if ok {
			return fields, nil
		}
		generation = gen
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sealed := bsda.SealedFields(doc, editor)
	fields := make([]string, len(sealed))
	for i, f := range sealed {
		fields[i] = string(f)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, bsda.Kind, id, editor, generation, fields); err != nil {
			s.logger.WarnContext(ctx, "sealed fields cache write failed", "bsda_id", id, "error", err)
		}
	}
	return fields, nil
}

// apply merges the accepted diff onto the stored content.
func apply(doc *models.Bsda, changes edition.Changes) error {
	merged := edition.Merge(models.ToInput(doc).Record(), changes.Diff)
	var next models.Input
	if err := edition.Decode(merged, &next); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to apply bsda changes")
	}
	doc.Content = next.Content
	return nil
}

// resolveRelations links the grouped and forwarded BSDAs named by input.
func resolveRelations(ctx context.Context, store docstore.Store[models.Bsda], doc *models.Bsda, input models.Input, grouping, forwarding bool) error {
	if grouping {
		refs := make([]models.Ref, 0, len(input.Grouping))
		for _, gid := range input.Grouping {
			ref, err := resolve(ctx, store, doc.ID, gid)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
		}
		doc.Grouping = refs
	}
	if forwarding && input.Forwarding != nil {
		if *input.Forwarding == "" {
			doc.Forwarding = nil
			return nil
		}
		ref, err := resolve(ctx, store, doc.ID, *input.Forwarding)
		if err != nil {
			return err
		}
		doc.Forwarding = &ref
	}
	return nil
}

func resolve(ctx context.Context, store docstore.Store[models.Bsda], self, id string) (models.Ref, error) {
	if id == self {
		return models.Ref{}, dErrors.New(dErrors.CodeValidation, "a bsda cannot reference itself")
	}
	linked, err := store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Ref{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("linked bsda %s not found", id))
	}
	if err != nil {
		return models.Ref{}, wrapStoreErr(err, "failed to load linked bsda")
	}
	ref := models.Ref{ID: linked.ID}
	if linked.Waste != nil && linked.Waste.Code != nil {
		ref.WasteCode = *linked.Waste.Code
	}
	return ref, nil
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, id, stage string, fields []string) error {
	if s.auditor == nil {
		return nil
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Timestamp:  requestcontext.Now(ctx),
		Action:     string(action),
		Kind:       bsda.Kind,
		DocumentID: id,
		Stage:      stage,
		Fields:     fields,
		ActorID:    requestcontext.Actor(ctx).UserID,
		RequestID:  requestcontext.RequestID(ctx),
		ClientIP:   requestcontext.ClientIP(ctx),
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

func (s *Service) rejected(ctx context.Context, id string, editor requestcontext.Editor, sfe *edition.SealedFieldsError) {
	fields := sfe.Fields()
	s.incrementCheck(metrics.OutcomeSealed)
	if s.metrics != nil {
		s.metrics.AddSealedFields(bsda.Kind, len(fields))
	}
	s.logger.InfoContext(ctx, "bsda edit rejected: sealed fields",
		"bsda_id", id,
		"fields", fields,
		"user_id", editor.UserID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.rejections != nil {
		s.rejections.Emit(ctx, audit.Event{
			Timestamp:  requestcontext.Now(ctx),
			Action:     string(audit.EventSealedFieldsRejected),
			Kind:       bsda.Kind,
			DocumentID: id,
			Fields:     fields,
			ActorID:    editor.UserID,
			RequestID:  requestcontext.RequestID(ctx),
			ClientIP:   requestcontext.ClientIP(ctx),
		})
	}
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, bsda.Kind, id); err != nil {
		s.logger.WarnContext(ctx, "sealed fields cache invalidation failed", "bsda_id", id, "error", err)
	}
}

func (s *Service) incrementCheck(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementCheck(bsda.Kind, outcome)
	}
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}

// newID returns a readable identifier such as BSDA-20240301-3F2A9C1B7.
func newID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return "BSDA-" + now.Format("20060102") + "-" + suffix
}
