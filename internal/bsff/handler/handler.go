package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bordereau/internal/bsff/models"
	"bordereau/internal/edition"
	dErrors "bordereau/pkg/domain-errors"
	"bordereau/pkg/platform/httputil"
	"bordereau/pkg/requestcontext"
)

// Service defines the BSFF operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, input models.Input) (*models.Bsff, error)
	Get(ctx context.Context, id string) (*models.Bsff, error)
	Update(ctx context.Context, id string, input models.Input) (*models.Bsff, error)
	Sign(ctx context.Context, id string, stage edition.SignatureType) (*models.Bsff, error)
	SealedFields(ctx context.Context, id string) ([]string, error)
	UpdatePackaging(ctx context.Context, id, packagingID string, input models.PackagingInput) (*models.Packaging, error)
	SignPackaging(ctx context.Context, id, packagingID string, stage edition.SignatureType) (*models.Bsff, error)
	SealedPackagingFields(ctx context.Context, id, packagingID string) ([]string, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts BSFF and packaging endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/bsffs", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Patch("/{id}", h.HandleUpdate)
		r.Post("/{id}/signatures", h.HandleSign)
		r.Get("/{id}/sealed-fields", h.HandleSealedFields)

		r.Route("/{id}/packagings/{packagingID}", func(r chi.Router) {
			r.Patch("/", h.HandleUpdatePackaging)
			r.Post("/signatures", h.HandleSignPackaging)
			r.Get("/sealed-fields", h.HandleSealedPackagingFields)
		})
	})
}

// HandleCreate handles POST /bsffs.
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
		h.fail(w, ctx, "bsff creation failed", "", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, doc)
}

// HandleGet handles GET /bsffs/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	id := chi.URLParam(r, "id")

	doc, err := h.service.Get(ctx, id)
	if err != nil {
		h.fail(w, ctx, "bsff lookup failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleUpdate handles PATCH /bsffs/{id}.
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
		h.fail(w, ctx, "bsff update failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleSign handles POST /bsffs/{id}/signatures.
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
		h.fail(w, ctx, "bsff signature failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleSealedFields handles GET /bsffs/{id}/sealed-fields.
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

// HandleUpdatePackaging handles PATCH /bsffs/{id}/packagings/{packagingID}.
func (h *Handler) HandleUpdatePackaging(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	id, packagingID := chi.URLParam(r, "id"), chi.URLParam(r, "packagingID")
	req, ok := httputil.DecodeAndPrepare[PackagingRequest](w, r, h.logger, ctx)
	if !ok {
		return
	}

	p, err := h.service.UpdatePackaging(ctx, id, packagingID, req.PackagingInput)
	if err != nil {
		h.fail(w, ctx, "packaging update failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleSignPackaging handles POST /bsffs/{id}/packagings/{packagingID}/signatures.
func (h *Handler) HandleSignPackaging(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	id, packagingID := chi.URLParam(r, "id"), chi.URLParam(r, "packagingID")
	req, ok := httputil.DecodeAndPrepare[SignRequest](w, r, h.logger, ctx)
	if !ok {
		return
	}

	doc, err := h.service.SignPackaging(ctx, id, packagingID, req.Stage())
	if err != nil {
		h.fail(w, ctx, "packaging signature failed", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleSealedPackagingFields handles GET /bsffs/{id}/packagings/{packagingID}/sealed-fields.
func (h *Handler) HandleSealedPackagingFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.authenticated(w, ctx) {
		return
	}
	id, packagingID := chi.URLParam(r, "id"), chi.URLParam(r, "packagingID")

	fields, err := h.service.SealedPackagingFields(ctx, id, packagingID)
	if err != nil {
		h.fail(w, ctx, "sealed packaging fields lookup failed", id, err)
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
		"bsff_id", id,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
