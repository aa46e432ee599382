package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bordereau/internal/bsda/models"
	"bordereau/internal/bsda/service/mocks"
	"bordereau/internal/edition"
	"bordereau/internal/platform/docstore"
	"bordereau/internal/platform/metrics"
	dErrors "bordereau/pkg/domain-errors"
	audit "bordereau/pkg/platform/audit"
	"bordereau/pkg/requestcontext"
)

// =============================================================================
// BSDA Service Test Suite
// =============================================================================
// Runs the service against the in-memory store so the transactional
// read-check-write sequence is exercised end to end. Publishers and the
// sealed-fields cache are mocked.

const (
	emitterSiret     = "85001946400021"
	transporterSiret = "13001045700013"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

type ServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	store      *docstore.Memory[models.Bsda]
	auditor    *mocks.MockAuditPublisher
	rejections *mocks.MockRejectionPublisher
	cache      *mocks.MockSealedCache
	metrics    *metrics.Metrics
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = docstore.NewMemory[models.Bsda]()
	s.auditor = mocks.NewMockAuditPublisher(s.ctrl)
	s.rejections = mocks.NewMockRejectionPublisher(s.ctrl)
	s.cache = mocks.NewMockSealedCache(s.ctrl)
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.service = New(s.store, docstore.NewShardedTx[models.Bsda](s.store, time.Second),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithAuditPublisher(s.auditor),
		WithRejectionPublisher(s.rejections),
		WithSealedCache(s.cache),
	)
}

func (s *ServiceSuite) ctx(sirets ...string) context.Context {
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	return requestcontext.WithActor(ctx, requestcontext.Editor{UserID: "user-1", Sirets: sirets})
}

// allowAudit accepts any later audit event. gomock matches expectations in
// declaration order, so subtests that capture events run before it.
func (s *ServiceSuite) allowAudit() {
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func input(wasteCode string) models.Input {
	return models.Input{Content: models.Content{
		Type: ptr(models.TypeGathering),
		Emitter: &models.Emitter{Company: &models.Company{
			Name:  ptr("Producteur"),
			Siret: ptr(emitterSiret),
		}},
		Waste: &models.Waste{Code: ptr(wasteCode), MaterialName: ptr("amiante")},
	}}
}

func (s *ServiceSuite) create(in models.Input) *models.Bsda {
	doc, err := s.service.Create(s.ctx(emitterSiret), in)
	s.Require().NoError(err)
	return doc
}

func (s *ServiceSuite) checks(outcome string) float64 {
	return testutil.ToFloat64(s.metrics.EditionChecks.WithLabelValues("bsda", outcome))
}

// =============================================================================
// Create
// =============================================================================

func (s *ServiceSuite) TestCreate() {
	s.Run("stores an initial document and records it", func() {
		var events []audit.Event
		s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
			events = append(events, e)
			return nil
		})

		doc := s.create(input("06 07 01*"))

		s.True(strings.HasPrefix(doc.ID, "BSDA-20240301-"))
		s.Equal(models.StatusInitial, doc.Status)
		s.Equal(now, doc.CreatedAt)

		got, err := s.service.Get(context.Background(), doc.ID)
		s.Require().NoError(err)
		s.Equal("06 07 01*", *got.Waste.Code)

		s.Require().Len(events, 1)
		s.Equal(string(audit.EventBsdaCreated), events[0].Action)
		s.Equal(doc.ID, events[0].DocumentID)
		s.Equal("user-1", events[0].ActorID)
		s.Equal("req-1", events[0].RequestID)
	})

	s.Run("resolves grouped documents", func() {
		s.allowAudit()
		grouped := s.create(input("06 07 01*"))

		in := input("17 06 05*")
		in.Grouping = []string{grouped.ID}
		doc := s.create(in)

		s.Equal([]models.Ref{{ID: grouped.ID, WasteCode: "06 07 01*"}}, doc.Grouping)
	})

	s.Run("unknown forwarded document is rejected", func() {
		in := input("06 07 01*")
		in.Forwarding = ptr("BSDA-missing")

		_, err := s.service.Create(s.ctx(emitterSiret), in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestCreateFailsWhenAuditFails() {
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

	_, err := s.service.Create(s.ctx(emitterSiret), input("06 07 01*"))
	s.Require().Error(err)
	s.Equal(dErrors.CodeInternal, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestGet() {
	_, err := s.service.Get(context.Background(), "BSDA-unknown")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// =============================================================================
// Update
// =============================================================================

func (s *ServiceSuite) TestUpdate() {
	s.Run("applies changed fields", func() {
		s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)
		doc := s.create(input("06 07 01*"))

		var updated audit.Event
		s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
			updated = e
			return nil
		}).Times(1)
		s.cache.EXPECT().Invalidate(gomock.Any(), "bsda", doc.ID).Return(nil)

		got, err := s.service.Update(s.ctx(emitterSiret), doc.ID, models.Input{Content: models.Content{
			Waste: &models.Waste{Code: ptr("17 06 05*")},
		}})
		s.Require().NoError(err)
		s.Equal("17 06 05*", *got.Waste.Code)
		s.Equal("amiante", *got.Waste.MaterialName)
		s.Equal(emitterSiret, *got.Emitter.Company.Siret)

		s.Equal(string(audit.EventBsdaUpdated), updated.Action)
		s.Equal([]string{"wasteCode"}, updated.Fields)
	})

	s.Run("identical values write nothing", func() {
		s.allowAudit()
		doc := s.create(input("06 07 01*"))
		before := s.checks(metrics.OutcomeNoop)

		got, err := s.service.Update(s.ctx(emitterSiret), doc.ID, input("06 07 01*"))
		s.Require().NoError(err)
		s.Equal(doc.UpdatedAt, got.UpdatedAt)
		s.Equal(before+1, s.checks(metrics.OutcomeNoop))
	})

	s.Run("sealed fields reject the whole edit", func() {
		s.allowAudit()
		doc := s.create(input("06 07 01*"))
		_, err := s.service.Sign(s.ctx(emitterSiret), doc.ID, edition.SignatureEmission)
		s.Require().NoError(err)

		var rejected audit.Event
		s.rejections.EXPECT().Emit(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e audit.Event) {
			rejected = e
		})

		_, err = s.service.Update(s.ctx(transporterSiret), doc.ID, models.Input{Content: models.Content{
			Waste: &models.Waste{Code: ptr("17 06 05*"), MaterialName: ptr("fibrociment")},
		}})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeSealedFields))
		sfe, ok := edition.AsSealedFields(err)
		s.Require().True(ok)
		s.Equal([]string{"wasteCode"}, sfe.Fields())

		got, err := s.service.Get(context.Background(), doc.ID)
		s.Require().NoError(err)
		s.Equal("06 07 01*", *got.Waste.Code)
		s.Equal("amiante", *got.Waste.MaterialName)

		s.Equal(string(audit.EventSealedFieldsRejected), rejected.Action)
		s.Equal([]string{"wasteCode"}, rejected.Fields)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.SealedFieldsTotal.WithLabelValues("bsda")))
	})

	s.Run("reposting empty lists after their stage is a no-op", func() {
		s.allowAudit()
		in := input("06 07 01*")
		in.Packagings = []models.Packaging{}
		in.Intermediaries = []models.ForeignCompany{}
		doc := s.create(in)
		_, err := s.service.Sign(s.ctx(emitterSiret), doc.ID, edition.SignatureEmission)
		s.Require().NoError(err)
		signed, err := s.service.Sign(s.ctx(emitterSiret), doc.ID, edition.SignatureWork)
		s.Require().NoError(err)
		before := s.checks(metrics.OutcomeNoop)

		got, err := s.service.Update(s.ctx(emitterSiret), doc.ID, in)
		s.Require().NoError(err)
		s.Equal(signed.UpdatedAt, got.UpdatedAt)
		s.Equal(before+1, s.checks(metrics.OutcomeNoop))
	})

	s.Run("unknown document", func() {
		_, err := s.service.Update(s.ctx(emitterSiret), "BSDA-unknown", input("06 07 01*"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// Sign
// =============================================================================

func (s *ServiceSuite) TestSign() {
	s.Run("captures the signature once", func() {
		s.allowAudit()
		doc := s.create(input("06 07 01*"))

		got, err := s.service.Sign(s.ctx(emitterSiret), doc.ID, edition.SignatureEmission)
		s.Require().NoError(err)
		s.Equal(models.StatusSignedByProducer, got.Status)
		s.Equal("user-1", got.Signatures.Emission.Author)
		s.Equal(now, got.Signatures.Emission.Date)

		_, err = s.service.Sign(s.ctx(emitterSiret), doc.ID, edition.SignatureEmission)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.ErrorIs(err, models.ErrAlreadySigned)
	})

	s.Run("stage outside the chain", func() {
		s.allowAudit()
		doc := s.create(input("06 07 01*"))

		_, err := s.service.Sign(s.ctx(emitterSiret), doc.ID, edition.SignatureReception)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("records the signature metric", func() {
		s.allowAudit()
		doc := s.create(input("06 07 01*"))
		before := testutil.ToFloat64(s.metrics.SignaturesTotal.WithLabelValues("bsda", "TRANSPORT"))

		_, err := s.service.Sign(s.ctx(transporterSiret), doc.ID, edition.SignatureTransport)
		s.Require().NoError(err)
		s.Equal(before+1, testutil.ToFloat64(s.metrics.SignaturesTotal.WithLabelValues("bsda", "TRANSPORT")))
	})
}

// =============================================================================
// SealedFields
// =============================================================================

func (s *ServiceSuite) TestSealedFields() {
	s.Run("cache hit skips the store", func() {
		s.cache.EXPECT().Get(gomock.Any(), "bsda", "BSDA-cached", gomock.Any()).Return([]string{"wasteCode"}, int64(3), true, nil)

		fields, err := s.service.SealedFields(s.ctx(emitterSiret), "BSDA-cached")
		s.Require().NoError(err)
		s.Equal([]string{"wasteCode"}, fields)
	})

	s.Run("cache miss computes and stores", func() {
		s.allowAudit()
		doc := s.create(input("06 07 01*"))
		_, err := s.service.Sign(s.ctx(emitterSiret), doc.ID, edition.SignatureEmission)
		s.Require().NoError(err)

		var cached []string
		s.cache.EXPECT().Get(gomock.Any(), "bsda", doc.ID, gomock.Any()).Return(nil, int64(7), false, nil)
		s.cache.EXPECT().Put(gomock.Any(), "bsda", doc.ID, gomock.Any(), int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _ requestcontext.Editor, _ int64, fields []string) error {
				cached = fields
				return nil
			})

		fields, err := s.service.SealedFields(s.ctx(transporterSiret), doc.ID)
		s.Require().NoError(err)
		s.Contains(fields, "wasteCode")
		s.NotContains(fields, "wasteMaterialName")
		s.Equal(fields, cached)
	})

	s.Run("cache errors fall back to the store", func() {
		s.allowAudit()
		doc := s.create(input("06 07 01*"))

		s.cache.EXPECT().Get(gomock.Any(), "bsda", doc.ID, gomock.Any()).Return(nil, int64(-1), false, errors.New("redis down"))
		s.cache.EXPECT().Put(gomock.Any(), "bsda", doc.ID, gomock.Any(), int64(-1), gomock.Any()).Return(errors.New("redis down"))

		fields, err := s.service.SealedFields(s.ctx(transporterSiret), doc.ID)
		s.Require().NoError(err)
		s.Empty(fields)
	})
}
