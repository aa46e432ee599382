// Package httputil renders domain results and errors as JSON responses.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "bordereau/pkg/domain-errors"
	"bordereau/pkg/requestcontext"
)

// maxBodyBytes bounds request bodies decoded by DecodeAndPrepare.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error            string   `json:"error"`
	ErrorDescription string   `json:"error_description,omitempty"`
	Fields           []string `json:"fields,omitempty"`
	Messages         []string `json:"messages,omitempty"`
}

// FieldLister is implemented by errors that enumerate offending fields.
type FieldLister interface {
	Fields() []string
	Messages() []string
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status through its domain code. Internal errors
// never leak their description. Errors listing fields add them to the body.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := errorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		resp.ErrorDescription = err.Error()
	}

	var fl FieldLister
	if errors.As(err, &fl) {
		resp.Fields = fl.Fields()
		resp.Messages = fl.Messages()
	}

	WriteJSON(w, dErrors.ToHTTPStatus(code), resp)
}

// Preparable is implemented by requests that normalize and validate
// themselves after decoding.
type Preparable interface {
	Normalize()
	Validate() error
}

// DecodeAndPrepare decodes the JSON body into req, then normalizes and
// validates it. On failure the error response has been written and ok is
// false.
func DecodeAndPrepare[T any, P interface {
	*T
	Preparable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context) (*T, bool) {
	requestID := requestcontext.RequestID(ctx)

	var req T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}

	p := P(&req)
	p.Normalize()
	if err := p.Validate(); err != nil {
		logger.WarnContext(ctx, "invalid request",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}
