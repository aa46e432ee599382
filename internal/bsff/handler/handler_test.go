package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bordereau/internal/bsff/handler/mocks"
	"bordereau/internal/bsff/models"
	"bordereau/internal/edition"
	dErrors "bordereau/pkg/domain-errors"
	"bordereau/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

type listedFields []string

func (l listedFields) Error() string    { return "sealed: " + strings.Join(l, ", ") }
func (l listedFields) Fields() []string { return l }
func (l listedFields) Messages() []string {
	return []string{"Le transporteur n°1 a déjà signé le BSFF, il ne peut pas être supprimé ou modifié"}
}

func (s *HandlerSuite) newHandler(t *testing.T) (*mocks.MockService, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	h.Register(r)
	return svc, r
}

func do(t *testing.T, router http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := testutil.WithEditor(httptest.NewRequest(method, path, strings.NewReader(body)), "user-1", "38012986643097")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (s *HandlerSuite) TestCreate() {
	s.T().Run("201 with trimmed relations", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in models.Input) (*models.Bsff, error) {
			assert.Equal(t, []string{"PKG-1"}, in.Grouping)
			return &models.Bsff{ID: "FF-1", Status: models.StatusInitial}, nil
		})

		status, body := do(t, router, http.MethodPost, "/bsffs", `{"type":"GROUPEMENT","grouping":[" PKG-1 "]}`)

		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "FF-1", body["id"])
	})

	s.T().Run("400 when relations are combined", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		status, body := do(t, router, http.MethodPost, "/bsffs", `{"grouping":["PKG-1"],"repackaging":["PKG-2"]}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, string(dErrors.CodeValidation), body["error"])
	})

	s.T().Run("400 when a transporter is listed twice", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		status, _ := do(t, router, http.MethodPost, "/bsffs", `{"transporters":[{"id":"T-1"},{"id":" T-1"}]}`)

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func (s *HandlerSuite) TestUpdate() {
	s.T().Run("422 lists the locked transporters", func(t *testing.T) {
		svc, router := s.newHandler(t)
		sealed := dErrors.Wrap(listedFields{"transporters"}, dErrors.CodeSealedFields, "")
		svc.EXPECT().Update(gomock.Any(), "FF-1", gomock.Any()).Return(nil, sealed)

		status, body := do(t, router, http.MethodPatch, "/bsffs/FF-1", `{"transporters":[]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, []any{"transporters"}, body["fields"])
		assert.Len(t, body["messages"], 1)
	})
}

func (s *HandlerSuite) TestSign() {
	s.T().Run("400 without a transporter", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().Sign(gomock.Any(), "FF-1", edition.SignatureTransport).
			Return(nil, dErrors.Wrap(models.ErrNoTransporter, dErrors.CodeValidation, ""))

		status, _ := do(t, router, http.MethodPost, "/bsffs/FF-1/signatures", `{"type":"transport"}`)

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func (s *HandlerSuite) TestPackagings() {
	s.T().Run("routes packaging updates", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().UpdatePackaging(gomock.Any(), "FF-1", "PKG-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, in models.PackagingInput) (*models.Packaging, error) {
				assert.Equal(t, models.AcceptationAccepted, *in.Acceptation.Status)
				return &models.Packaging{ID: "PKG-1", PackagingInput: in}, nil
			})

		status, body := do(t, router, http.MethodPatch, "/bsffs/FF-1/packagings/PKG-1", `{"acceptation":{"status":"accepted"}}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "PKG-1", body["id"])
	})

	s.T().Run("400 for a refusal without reason", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().UpdatePackaging(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		status, _ := do(t, router, http.MethodPatch, "/bsffs/FF-1/packagings/PKG-1", `{"acceptation":{"status":"REFUSED"}}`)

		assert.Equal(t, http.StatusBadRequest, status)
	})

	s.T().Run("signs a packaging", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().SignPackaging(gomock.Any(), "FF-1", "PKG-1", edition.SignatureAcceptation).
			Return(&models.Bsff{ID: "FF-1", Status: models.StatusAccepted}, nil)

		status, body := do(t, router, http.MethodPost, "/bsffs/FF-1/packagings/PKG-1/signatures", `{"type":"ACCEPTATION"}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ACCEPTED", body["status"])
	})

	s.T().Run("lists sealed packaging fields", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().SealedPackagingFields(gomock.Any(), "FF-1", "PKG-1").Return([]string{"acceptationWeight"}, nil)

		status, body := do(t, router, http.MethodGet, "/bsffs/FF-1/packagings/PKG-1/sealed-fields", "")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []any{"acceptationWeight"}, body["fields"])
	})

	s.T().Run("404 for an unknown packaging", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().SealedPackagingFields(gomock.Any(), "FF-1", "PKG-9").
			Return(nil, dErrors.Wrap(models.ErrPackagingNotFound, dErrors.CodeNotFound, ""))

		status, _ := do(t, router, http.MethodGet, "/bsffs/FF-1/packagings/PKG-9/sealed-fields", "")

		assert.Equal(t, http.StatusNotFound, status)
	})
}
