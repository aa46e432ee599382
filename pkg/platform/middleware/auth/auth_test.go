package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"bordereau/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return s.claims, s.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen requestcontext.Editor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.Actor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token puts editor in context", func(t *testing.T) {
		mw := RequireAuth(stubValidator{claims: &JWTClaims{UserID: "user-1", Sirets: []string{"85001946400021"}}}, logger)
		req := httptest.NewRequest(http.MethodGet, "/bsdas/1", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "user-1", seen.UserID)
		assert.True(t, seen.BelongsTo("85001946400021"))
	})

	t.Run("missing header", func(t *testing.T) {
		mw := RequireAuth(stubValidator{}, logger)
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bsdas/1", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"unauthorized","error_description":"Missing or invalid Authorization header"}`, w.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		mw := RequireAuth(stubValidator{err: errors.New("bad signature")}, logger)
		req := httptest.NewRequest(http.MethodGet, "/bsdas/1", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
