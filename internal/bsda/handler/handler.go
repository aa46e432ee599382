package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bordereau/internal/bsda/models"
	"bordereau/internal/edition"
	dErrors "bordereau/pkg/domain-errors"
	"bordereau/pkg/platform/httputil"
	"bordereau/pkg/requestcontext"
)

// Service defines the BSDA operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, input models.Input) (*models.Bsda, error)
	Get(ctx context.Context, id string) (*models.Bsda, error)
	Update(ctx context.Context, id string, input models.Input) (*models.Bsda, error)
	Sign(ctx context.Context, id string, stage edition.SignatureType) (*models.Bsda, error)
	SealedFields(ctx context.Context, id string) ([]string, error)
}

// Handler wires BSDA endpoints to the BSDA service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts BSDA endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/bsdas", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Patch("/{id}", h.HandleUpdate)
		r.Post("/{id}/signatures", h.HandleSign)
		r.Get("/{id}/sealed-fields", h.HandleSealedFields)
	})
}

// HandleCreate handles POST /bsdas.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	req, ok := httputil.DecodeAndPrepare[InputRequest](w, r, h.logger, ctx)
	if !ok {
		return
	}

	doc, err := h.service.Create(ctx, req.Input)
	if err != nil {
		h.fail(w, ctx, "bsda creation failed", "", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, doc)
}

// HandleGet handles GET /bsdas/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	id := chi.URLParam(r, "id")

	doc, err := h.service.Get(ctx, id)
	if err != nil {
		h.fail(w, ctx, "bsda lookup failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleUpdate handles PATCH /bsdas/{id}. Absent fields are left unchanged.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	id := chi.URLParam(r, "id")
	req, ok := httputil.DecodeAndPrepare[InputRequest](w, r, h.logger, ctx)
	if !ok {
		return
	}

	doc, err := h.service.Update(ctx, id, req.Input)
	if err != nil {
		h.fail(w, ctx, "bsda update failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleSign handles POST /bsdas/{id}/signatures.
func (h *Handler) HandleSign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	id := chi.URLParam(r, "id")
	req, ok := httputil.DecodeAndPrepare[SignRequest](w, r, h.logger, ctx)
	if !ok {
		return
	}

	doc, err := h.service.Sign(ctx, id, req.Stage())
	if err != nil {
		h.fail(w, ctx, "bsda signature failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleSealedFields handles GET /bsdas/{id}/sealed-fields.
func (h *Handler) HandleSealedFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	id := chi.URLParam(r, "id")

	fields, err := h.service.SealedFields(ctx, id)
	if err != nil {
		h.fail(w, ctx, "sealed fields lookup failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SealedFieldsResponse{Fields: fields})
}

func (h *Handler) authenticated(w http.ResponseWriter, ctx context.Context) bool {
	if requestcontext.Actor(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, ctx context.Context, msg, id string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"bsda_id", id,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
