package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bordereau/pkg/platform/httputil"
	authmw "bordereau/pkg/platform/middleware/auth"
	"bordereau/pkg/platform/middleware/metadata"
	request "bordereau/pkg/platform/middleware/request"
	"bordereau/pkg/platform/middleware/requesttime"
)

// Registrar mounts the routes of one document kind.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing dependency answers.
type HealthCheck func(ctx context.Context) error

// Config carries what the router needs besides the document handlers.
type Config struct {
	Validator      authmw.JWTValidator
	Logger         *slog.Logger
	Gatherer       prometheus.Gatherer
	Checks         map[string]HealthCheck
	RequestTimeout time.Duration
}

// NewRouter wires the public endpoints. Health and metrics are open; every
// document route requires a bearer token.
func NewRouter(cfg Config, registrars ...Registrar) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.Timeout(cfg.RequestTimeout))
	r.Use(requesttime.Middleware)

	r.Get("/healthz", health(cfg.Checks, cfg.Logger))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(authmw.RequireAuth(cfg.Validator, cfg.Logger))
		for _, reg := range registrars {
			reg.Register(r)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func health(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
