package workflow

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bsdahandler "bordereau/internal/bsda/handler"
	bsdamodels "bordereau/internal/bsda/models"
	bsdaservice "bordereau/internal/bsda/service"
	bsffhandler "bordereau/internal/bsff/handler"
	bsffmodels "bordereau/internal/bsff/models"
	bsffservice "bordereau/internal/bsff/service"
	jwttoken "bordereau/internal/jwt_token"
	"bordereau/internal/platform/docstore"
	"bordereau/internal/platform/metrics"
	httptransport "bordereau/internal/transport/http"
	"bordereau/pkg/platform/audit"
	"bordereau/pkg/platform/audit/publishers/compliance"
	"bordereau/pkg/platform/audit/publishers/security"
	auditmemory "bordereau/pkg/platform/audit/store/memory"
	"bordereau/pkg/testutil"
)

const (
	emitterSiret     = "85001946400021"
	transporterSiret = "13001045700013"
	destinationSiret = "53075596600047"
)

// stack is the HTTP surface over in-memory stores, wired as the server does
// without a database.
type stack struct {
	router   http.Handler
	jwt      *jwttoken.JWTService
	audit    *auditmemory.InMemoryStore
	security *security.Publisher
}

func newStack(t *testing.T) *stack {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)

	auditStore := auditmemory.NewInMemoryStore()
	compliancePublisher := compliance.New(auditStore, compliance.WithLogger(log))
	securityPublisher := security.New(auditStore, security.WithLogger(log))

	bsdaStore := docstore.NewMemory[bsdamodels.Bsda]()
	bsffStore := docstore.NewMemory[bsffmodels.Bsff]()
	bsdaSvc := bsdaservice.New(bsdaStore, docstore.NewShardedTx[bsdamodels.Bsda](bsdaStore, time.Second),
		bsdaservice.WithLogger(log),
		bsdaservice.WithMetrics(m),
		bsdaservice.WithAuditPublisher(compliancePublisher),
		bsdaservice.WithRejectionPublisher(securityPublisher),
	)
	bsffSvc := bsffservice.New(bsffStore, docstore.NewShardedTx[bsffmodels.Bsff](bsffStore, time.Second),
		bsffservice.WithLogger(log),
		bsffservice.WithMetrics(m),
		bsffservice.WithAuditPublisher(compliancePublisher),
		bsffservice.WithRejectionPublisher(securityPublisher),
	)

	jwt := jwttoken.NewJWTService("integration-signing-key", "bordereau", "bordereau-api")
	router := httptransport.NewRouter(httptransport.Config{
		Validator: jwttoken.NewJWTServiceAdapter(jwt),
		Logger:    log,
		Gatherer:  reg,
	},
		bsdahandler.New(bsdaSvc, log),
		bsffhandler.New(bsffSvc, log),
	)
	return &stack{router: router, jwt: jwt, audit: auditStore, security: securityPublisher}
}

// as sends an authenticated JSON request for a user acting for siret.
func (s *stack) as(t *testing.T, siret, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	token, err := s.jwt.GenerateAccessToken("user-"+siret, []string{siret}, time.Hour)
	require.NoError(t, err)
	req := testutil.WithBearer(testutil.NewJSONRequest(t, method, path, body), token)
	return testutil.DoRequest(s.router, req)
}

func (s *stack) actions(t *testing.T, kind, id string) []string {
	t.Helper()
	events, err := s.audit.ListByDocument(context.Background(), kind, id)
	require.NoError(t, err)
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Action
	}
	return out
}

func sign(stage string) map[string]string {
	return map[string]string{"type": stage}
}

func TestBsdaWorkflow(t *testing.T) {
	s := newStack(t)
	var id string

	testutil.Given(t, "a BSDA created by its producer", func(t *testing.T) {
		rr := s.as(t, emitterSiret, http.MethodPost, "/bsdas", map[string]any{
			"type":    bsdamodels.TypeGathering,
			"emitter": map[string]any{"company": map[string]any{"siret": emitterSiret, "name": "Producteur"}},
			"waste":   map[string]any{"code": "06 07 01*", "materialName": "amiante"},
		})
		require.True(t, testutil.AssertStatus(t, rr, http.StatusCreated))
		doc := testutil.UnmarshalResponse[bsdamodels.Bsda](t, rr)
		assert.Equal(t, bsdamodels.StatusInitial, doc.Status)
		id = doc.ID

		testutil.When(t, "the producer edits it before signing", func(t *testing.T) {
			rr := s.as(t, emitterSiret, http.MethodPatch, "/bsdas/"+id, map[string]any{
				"waste": map[string]any{"code": "17 06 05*"},
			})

			testutil.Then(t, "the edit is applied", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				doc := testutil.UnmarshalResponse[bsdamodels.Bsda](t, rr)
				assert.Equal(t, "17 06 05*", *doc.Waste.Code)
				assert.Equal(t, "amiante", *doc.Waste.MaterialName)
			})
		})

		testutil.When(t, "the producer signs EMISSION", func(t *testing.T) {
			rr := s.as(t, emitterSiret, http.MethodPost, "/bsdas/"+id+"/signatures", sign("EMISSION"))

			testutil.Then(t, "the document is signed by the producer", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				doc := testutil.UnmarshalResponse[bsdamodels.Bsda](t, rr)
				assert.Equal(t, bsdamodels.StatusSignedByProducer, doc.Status)
				assert.Equal(t, "user-"+emitterSiret, doc.Signatures.Emission.Author)
			})
		})

		testutil.When(t, "the waste code is edited after EMISSION", func(t *testing.T) {
			rr := s.as(t, transporterSiret, http.MethodPatch, "/bsdas/"+id, map[string]any{
				"waste": map[string]any{"code": "06 07 01*", "materialName": "fibrociment"},
			})

			testutil.Then(t, "the whole edit is refused with the sealed field", func(t *testing.T) {
				resp := testutil.AssertError(t, rr, http.StatusUnprocessableEntity, "sealed_fields")
				assert.Equal(t, []string{"wasteCode"}, resp.Fields)
				assert.NotEmpty(t, resp.Messages)

				get := s.as(t, emitterSiret, http.MethodGet, "/bsdas/"+id, nil)
				doc := testutil.UnmarshalResponse[bsdamodels.Bsda](t, get)
				assert.Equal(t, "amiante", *doc.Waste.MaterialName)
			})

			testutil.And(t, "the rejection reaches the audit trail once flushed", func(t *testing.T) {
				assert.Equal(t, 1, s.security.Flush(context.Background()))
				assert.Contains(t, s.actions(t, "bsda", id), string(audit.EventSealedFieldsRejected))
			})
		})

		testutil.When(t, "the producer asks for the sealed fields", func(t *testing.T) {
			rr := s.as(t, emitterSiret, http.MethodGet, "/bsdas/"+id+"/sealed-fields", nil)

			testutil.Then(t, "the waste code is listed", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				resp := testutil.UnmarshalResponse[bsdahandler.SealedFieldsResponse](t, rr)
				assert.Contains(t, resp.Fields, "wasteCode")
			})
		})

		testutil.When(t, "EMISSION is signed twice", func(t *testing.T) {
			rr := s.as(t, emitterSiret, http.MethodPost, "/bsdas/"+id+"/signatures", sign("EMISSION"))

			testutil.Then(t, "the second signature conflicts", func(t *testing.T) {
				testutil.AssertError(t, rr, http.StatusConflict, "conflict")
			})
		})

		testutil.Then(t, "every accepted change is in the compliance trail", func(t *testing.T) {
			assert.Equal(t, []string{
				string(audit.EventBsdaCreated),
				string(audit.EventBsdaUpdated),
				string(audit.EventBsdaSigned),
				string(audit.EventSealedFieldsRejected),
			}, s.actions(t, "bsda", id))

			events, err := s.audit.ListByDocument(context.Background(), "bsda", id)
			require.NoError(t, err)
			for _, e := range events {
				assert.Equal(t, "192.0.2.1", e.ClientIP, e.Action)
				assert.NotEmpty(t, e.RequestID, e.Action)
			}
		})
	})
}

func TestBsffPackagingWorkflow(t *testing.T) {
	s := newStack(t)

	testutil.Given(t, "a BSFF received by its destination", func(t *testing.T) {
		rr := s.as(t, emitterSiret, http.MethodPost, "/bsffs", map[string]any{
			"type":        bsffmodels.TypeTracerFluide,
			"emitter":     map[string]any{"company": map[string]any{"siret": emitterSiret}},
			"waste":       map[string]any{"code": "14 06 01*"},
			"destination": map[string]any{"company": map[string]any{"siret": destinationSiret}},
			"transporters": []map[string]any{{
				"company":   map[string]any{"siret": transporterSiret},
				"transport": map[string]any{"mode": "ROAD", "plates": []string{"AA-000-AA"}},
			}},
			"packagings": []map[string]any{
				{"type": "BOUTEILLE", "numero": "B-1", "weight": 10},
				{"type": "BOUTEILLE", "numero": "B-2", "weight": 5},
			},
		})
		require.True(t, testutil.AssertStatus(t, rr, http.StatusCreated))
		doc := testutil.UnmarshalResponse[bsffmodels.Bsff](t, rr)
		require.Len(t, doc.Packagings, 2)
		id := doc.ID
		first, second := doc.Packagings[0].ID, doc.Packagings[1].ID

		for _, step := range []struct{ siret, stage string }{
			{emitterSiret, "EMISSION"},
			{transporterSiret, "TRANSPORT"},
			{destinationSiret, "RECEPTION"},
		} {
			rr := s.as(t, step.siret, http.MethodPost, "/bsffs/"+id+"/signatures", sign(step.stage))
			require.True(t, testutil.AssertStatus(t, rr, http.StatusOK), step.stage)
		}

		packaging := func(pid string) string { return "/bsffs/" + id + "/packagings/" + pid }

		testutil.When(t, "a refusal has no reason", func(t *testing.T) {
			rr := s.as(t, destinationSiret, http.MethodPatch, packaging(second), map[string]any{
				"acceptation": map[string]any{"status": "refused"},
			})

			testutil.Then(t, "it is rejected before reaching the document", func(t *testing.T) {
				testutil.AssertError(t, rr, http.StatusBadRequest, "validation_error")
			})
		})

		testutil.When(t, "one packaging is accepted and the other refused", func(t *testing.T) {
			accept := func(t *testing.T, pid string, acceptation map[string]any) *bsffmodels.Bsff {
				rr := s.as(t, destinationSiret, http.MethodPatch, packaging(pid), map[string]any{"acceptation": acceptation})
				require.True(t, testutil.AssertStatus(t, rr, http.StatusOK))
				rr = s.as(t, destinationSiret, http.MethodPost, packaging(pid)+"/signatures", sign("ACCEPTATION"))
				require.True(t, testutil.AssertStatus(t, rr, http.StatusOK))
				return testutil.UnmarshalResponse[bsffmodels.Bsff](t, rr)
			}
			accept(t, first, map[string]any{"status": "accepted", "weight": 10})
			doc := accept(t, second, map[string]any{"status": "refused", "refusalReason": "fuite", "weight": 0})

			testutil.Then(t, "the BSFF is partially refused", func(t *testing.T) {
				assert.Equal(t, bsffmodels.StatusPartiallyRefused, doc.Status)
			})

			testutil.And(t, "the accepted weight is sealed", func(t *testing.T) {
				rr := s.as(t, destinationSiret, http.MethodPatch, packaging(first), map[string]any{
					"acceptation": map[string]any{"weight": 9},
				})
				resp := testutil.AssertError(t, rr, http.StatusUnprocessableEntity, "sealed_fields")
				assert.Equal(t, []string{"acceptationWeight"}, resp.Fields)
			})

			testutil.Then(t, "the refused packaging cannot be processed", func(t *testing.T) {
				rr := s.as(t, destinationSiret, http.MethodPost, packaging(second)+"/signatures", sign("OPERATION"))
				testutil.AssertError(t, rr, http.StatusBadRequest, "validation_error")
			})
		})

		testutil.When(t, "the accepted packaging is processed", func(t *testing.T) {
			rr := s.as(t, destinationSiret, http.MethodPatch, packaging(first), map[string]any{
				"operation": map[string]any{"code": "R2", "mode": "REUTILISATION"},
			})
			require.True(t, testutil.AssertStatus(t, rr, http.StatusOK))
			rr = s.as(t, destinationSiret, http.MethodPost, packaging(first)+"/signatures", sign("OPERATION"))

			testutil.Then(t, "the BSFF is processed", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				doc := testutil.UnmarshalResponse[bsffmodels.Bsff](t, rr)
				assert.Equal(t, bsffmodels.StatusProcessed, doc.Status)
			})

			testutil.Then(t, "packaging signatures are in the compliance trail", func(t *testing.T) {
				assert.Equal(t, []string{
					string(audit.EventPackagingUpdated),
					string(audit.EventPackagingSigned),
					string(audit.EventPackagingUpdated),
					string(audit.EventPackagingSigned),
				}, s.actions(t, "bsff_packaging", first))
				assert.Contains(t, s.actions(t, "bsff", id), string(audit.EventBsffSigned))
			})
		})
	})
}

func TestUnauthenticatedRequestsAreRefused(t *testing.T) {
	s := newStack(t)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(t, http.MethodPost, "/bsdas", map[string]any{}))
	testutil.AssertError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestMalformedBodyIsRejected(t *testing.T) {
	s := newStack(t)
	token, err := s.jwt.GenerateAccessToken("user-1", []string{emitterSiret}, time.Hour)
	require.NoError(t, err)

	req := testutil.WithBearer(testutil.NewRequestWithBody(t, http.MethodPost, "/bsffs", `{"type":`), token)
	rr := testutil.DoRequest(s.router, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
}
