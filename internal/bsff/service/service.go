package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bordereau/internal/bsff"
	"bordereau/internal/bsff/models"
	"bordereau/internal/edition"
	"bordereau/internal/platform/docstore"
	"bordereau/internal/platform/metrics"
	dErrors "bordereau/pkg/domain-errors"
	audit "bordereau/pkg/platform/audit"
	"bordereau/pkg/requestcontext"
)

// Store reads BSFFs outside of a transaction.
type Store interface {
	FindByID(ctx context.Context, id string) (*models.Bsff, error)
}

// StoreTx runs a read-check-write sequence in one isolated transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store docstore.Store[models.Bsff]) error) error
}

// Service is the write boundary of BSFFs and of their packagings.
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
		tracer: otel.Tracer("bordereau/bsff"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new BSFF in INITIAL state. Transporters and packagings get
// their identifiers here.
func (s *Service) Create(ctx context.Context, input models.Input) (*models.Bsff, error) {
	ctx, span := s.tracer.Start(ctx, "bsff.Create")
	defer span.End()

	now := requestcontext.Now(ctx)
	doc := &models.Bsff{
		ID:        newID("FF", now),
		Status:    models.StatusInitial,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rebuildLegs(doc, input.Transporters)
	rebuildPackagings(doc, input.Packagings)
	span.SetAttributes(attribute.String("bsff.id", doc.ID))

	err := s.tx.RunInTx(docstore.WithLockKey(ctx, doc.ID), func(ctx context.Context, store docstore.Store[models.Bsff]) error {
		if err := store.Create(ctx, doc.ID, doc); err != nil {
			return wrapStoreErr(err, "failed to create bsff")
		}
		return s.emit(ctx, audit.EventBsffCreated, bsff.Kind, doc.ID, "", nil)
	})
	if err != nil {
		return nil, s.fail(span, wrapTxErr(err))
	}

	s.logger.InfoContext(ctx, "bsff created",
		"bsff_id", doc.ID,
		"transporters", len(doc.Transporters),
		"packagings", len(doc.Packagings),
		"request_id", requestcontext.RequestID(ctx),
	)
	return doc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Bsff, error) {
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to load bsff")
	}
	return doc, nil
}

// Update applies the fields of input that differ from the stored document,
// or fails with dErrors.CodeSealedFields and writes nothing.
func (s *Service) Update(ctx context.Context, id string, input models.Input) (*models.Bsff, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "bsff.Update", trace.WithAttributes(attribute.String("bsff.id", id)))
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveUpdate(bsff.Kind, start)
	}

	editor := requestcontext.Actor(ctx)
	var (
		updated *models.Bsff
		changed []string
	)
	err := s.tx.RunInTx(docstore.WithLockKey(ctx, id), func(ctx context.Context, store docstore.Store[models.Bsff]) error {
		doc, err := store.FindByID(ctx, id)
		if err != nil {
			return wrapStoreErr(err, "failed to load bsff")
		}
		changes, err := bsff.Check(doc, input, editor)
		if err != nil {
			return err
		}
		changed = changes.Fields
		if changes.Empty() {
			updated = doc
			return nil
		}

		var next models.Input
		if err := edition.Decode(edition.Merge(models.ToInput(doc).Record(), changes.Diff), &next); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to apply bsff changes")
		}
		doc.Content = next.Content
		if changes.Has(string(bsff.FieldTransporters)) {
			rebuildLegs(doc, next.Transporters)
		}
		if changes.Has(string(bsff.FieldPackagings)) {
			rebuildPackagings(doc, next.Packagings)
		}
		doc.UpdatedAt = requestcontext.Now(ctx)

		if err := store.Save(ctx, id, doc); err != nil {
			return wrapStoreErr(err, "failed to save bsff")
		}
		if err := s.emit(ctx, audit.EventBsffUpdated, bsff.Kind, id, "", changes.Fields); err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		if sfe, ok := edition.AsSealedFields(err); ok {
			s.rejected(ctx, bsff.Kind, id, editor, sfe)
		}
		return nil, s.fail(span, wrapTxErr(err))
	}

	if len(changed) == 0 {
		s.incrementCheck(bsff.Kind, metrics.OutcomeNoop)
		return updated, nil
	}
	s.incrementCheck(bsff.Kind, metrics.OutcomeAccepted)
	s.invalidate(ctx, id)
	s.logger.InfoContext(ctx, "bsff updated",
		"bsff_id", id,
		"fields", changed,
		"request_id", requestcontext.RequestID(ctx),
	)
	return updated, nil
}

// Sign captures a BSFF level signature. Each TRANSPORT call signs the next
// transporter leg.
func (s *Service) Sign(ctx context.Context, id string, stage edition.SignatureType) (*models.Bsff, error) {
	ctx, span := s.tracer.Start(ctx, "bsff.Sign", trace.WithAttributes(
		attribute.String("bsff.id", id),
		attribute.String("bsff.stage", stage.String()),
	))
	defer span.End()

	var signed *models.Bsff
	err := s.tx.RunInTx(docstore.WithLockKey(ctx, id), func(ctx context.Context, store docstore.Store[models.Bsff]) error {
		doc, err := store.FindByID(ctx, id)
		if err != nil {
			return wrapStoreErr(err, "failed to load bsff")
		}
		if err := doc.Sign(stage, requestcontext.Actor(ctx).UserID, requestcontext.Now(ctx)); err != nil {
			return wrapSignErr(err)
		}
		if err := store.Save(ctx, id, doc); err != nil {
			return wrapStoreErr(err, "failed to save bsff")
		}
		if err := s.emit(ctx, audit.EventBsffSigned, bsff.Kind, id, stage.String(), nil); err != nil {
			return err
		}
		signed = doc
		return nil
	})
	if err != nil {
		return nil, s.fail(span, wrapTxErr(err))
	}

	if s.metrics != nil {
		s.metrics.IncrementSignature(bsff.Kind, stage.String())
	}
	s.invalidate(ctx, id)
	s.logger.InfoContext(ctx, "bsff signed",
		"bsff_id", id,
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
		fields, gen, ok, err := s.cache.Get(ctx, bsff.Kind, id, editor)
		if err != nil {
			s.logger.WarnContext(ctx, "sealed fields cache read failed", "bsff_id", id, "error", err)
		} else if s.metrics != nil {
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
	fields := toStrings(bsff.SealedFields(doc, editor))

	if s.cache != nil {
		if err := s.cache.Put(ctx, bsff.Kind, id, editor, generation, fields); err != nil {
			s.logger.WarnContext(ctx, "sealed fields cache write failed", "bsff_id", id, "error", err)
		}
	}
	return fields, nil
}

// UpdatePackaging edits one packaging, typically its acceptation or
// operation once the BSFF has been received.
func (s *Service) UpdatePackaging(ctx context.Context, id, packagingID string, input models.PackagingInput) (*models.Packaging, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "bsff.UpdatePackaging", trace.WithAttributes(
		attribute.String("bsff.id", id),
		attribute.String("bsff.packaging_id", packagingID),
	))
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveUpdate(bsff.PackagingKind, start)
	}

	editor := requestcontext.Actor(ctx)
	var (
		updated *models.Packaging
		changed []string
	)
	err := s.tx.RunInTx(docstore.WithLockKey(ctx, id), func(ctx context.Context, store docstore.Store[models.Bsff]) error {
		doc, err := store.FindByID(ctx, id)
		if err != nil {
			return wrapStoreErr(err, "failed to load bsff")
		}
		p, ok := doc.Packaging(packagingID)
		if !ok {
			return dErrors.Wrap(models.ErrPackagingNotFound, dErrors.CodeNotFound, "")
		}
		changes, err := bsff.CheckPackaging(doc, p, input)
		if err != nil {
			return err
		}
		changed = changes.Fields
		if changes.Empty() {
			updated = p
			return nil
		}

		var next models.PackagingInput
		if err := edition.Decode(edition.Merge(p.PackagingInput.Record(), changes.Diff), &next); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to apply packaging changes")
		}
		p.PackagingInput = next
		doc.UpdatedAt = requestcontext.Now(ctx)

		if err := store.Save(ctx, id, doc); err != nil {
			return wrapStoreErr(err, "failed to save bsff")
		}
		if err := s.emit(ctx, audit.EventPackagingUpdated, bsff.PackagingKind, packagingID, "", changes.Fields); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		if sfe, ok := edition.AsSealedFields(err); ok {
			s.rejected(ctx, bsff.PackagingKind, packagingID, editor, sfe)
		}
		return nil, s.fail(span, wrapTxErr(err))
	}

	if len(changed) == 0 {
		s.incrementCheck(bsff.PackagingKind, metrics.OutcomeNoop)
		return updated, nil
	}
	s.incrementCheck(bsff.PackagingKind, metrics.OutcomeAccepted)
	s.logger.InfoContext(ctx, "bsff packaging updated",
		"bsff_id", id,
		"packaging_id", packagingID,
		"fields", changed,
		"request_id", requestcontext.RequestID(ctx),
	)
	return updated, nil
}

// SignPackaging captures the ACCEPTATION or OPERATION signature of one
// packaging and returns the BSFF with its derived status.
func (s *Service) SignPackaging(ctx context.Context, id, packagingID string, stage edition.SignatureType) (*models.Bsff, error) {
	ctx, span := s.tracer.Start(ctx, "bsff.SignPackaging", trace.WithAttributes(
		attribute.String("bsff.id", id),
		attribute.String("bsff.packaging_id", packagingID),
		attribute.String("bsff.stage", stage.String()),
	))
	defer span.End()

	var signed *models.Bsff
	err := s.tx.RunInTx(docstore.WithLockKey(ctx, id), func(ctx context.Context, store docstore.Store[models.Bsff]) error {
		doc, err := store.FindByID(ctx, id)
		if err != nil {
			return wrapStoreErr(err, "failed to load bsff")
		}
		if err := doc.SignPackaging(packagingID, stage, requestcontext.Actor(ctx).UserID, requestcontext.Now(ctx)); err != nil {
			return wrapSignErr(err)
		}
		if err := store.Save(ctx, id, doc); err != nil {
			return wrapStoreErr(err, "failed to save bsff")
		}
		if err := s.emit(ctx, audit.EventPackagingSigned, bsff.PackagingKind, packagingID, stage.String(), nil); err != nil {
			return err
		}
		signed = doc
		return nil
	})
	if err != nil {
		return nil, s.fail(span, wrapTxErr(err))
	}

	if s.metrics != nil {
		s.metrics.IncrementSignature(bsff.PackagingKind, stage.String())
	}
	s.logger.InfoContext(ctx, "bsff packaging signed",
		"bsff_id", id,
		"packaging_id", packagingID,
		"stage", stage,
		"status", signed.Status,
		"request_id", requestcontext.RequestID(ctx),
	)
	return signed, nil
}

// SealedPackagingFields lists the fields of a packaging that can no longer
// change.
func (s *Service) SealedPackagingFields(ctx context.Context, id, packagingID string) ([]string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p, ok := doc.Packaging(packagingID)
	if !ok {
		return nil, dErrors.Wrap(models.ErrPackagingNotFound, dErrors.CodeNotFound, "")
	}
	return toStrings(bsff.SealedPackagingFields(doc, p)), nil
}

// rebuildLegs replaces the transporter legs with transporters. Legs keep
// their signature when they keep their position, which the transporter
// seal guarantees for signed legs.
func rebuildLegs(doc *models.Bsff, transporters []models.Transporter) {
	previous := doc.Transporters
	legs := make([]models.Leg, len(transporters))
	for i, t := range transporters {
		if t.ID == "" {
			t.ID = "TRS-" + uuid.NewString()
		}
		legs[i] = models.Leg{Transporter: t, Number: i + 1}
		if i < len(previous) && previous[i].ID == t.ID {
			legs[i].Signature = previous[i].Signature
		}
	}
	doc.Transporters = legs
}

// rebuildPackagings replaces the packagings, keeping the identifier of the
// packaging previously at the same position.
func rebuildPackagings(doc *models.Bsff, contents []models.PackagingContent) {
	previous := doc.Packagings
	packagings := make([]models.Packaging, len(contents))
	for i, c := range contents {
		p := models.Packaging{ID: "PKG-" + uuid.NewString()}
		if i < len(previous) {
			p = previous[i]
		}
		p.PackagingContent = c
		packagings[i] = p
	}
	doc.Packagings = packagings
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, kind, id, stage string, fields []string) error {
	if s.auditor == nil {
		return nil
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Timestamp:  requestcontext.Now(ctx),
		Action:     string(action),
		Kind:       kind,
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

func (s *Service) rejected(ctx context.Context, kind, id string, editor requestcontext.Editor, sfe *edition.SealedFieldsError) {
	fields := sfe.Fields()
	s.incrementCheck(kind, metrics.OutcomeSealed)
	if s.metrics != nil {
		s.metrics.AddSealedFields(kind, len(fields))
	}
	s.logger.InfoContext(ctx, "edit rejected: sealed fields",
		"kind", kind,
		"document_id", id,
		"fields", fields,
		"user_id", editor.UserID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.rejections != nil {
		s.rejections.Emit(ctx, audit.Event{
			Timestamp:  requestcontext.Now(ctx),
			Action:     string(audit.EventSealedFieldsRejected),
			Kind:       kind,
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
	if err := s.cache.Invalidate(ctx, bsff.Kind, id); err != nil {
		s.logger.WarnContext(ctx, "sealed fields cache invalidation failed", "bsff_id", id, "error", err)
	}
}

func (s *Service) incrementCheck(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementCheck(kind, outcome)
	}
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}

func toStrings[F ~string](fields []F) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

// newID returns a readable identifier such as FF-20240301-3F2A9C1B7.
func newID(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return prefix + "-" + now.Format("20060102") + "-" + suffix
}
