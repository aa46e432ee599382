package handler

import (
	"strings"

	"bordereau/internal/bsda/models"
	"bordereau/internal/edition"
	dErrors "bordereau/pkg/domain-errors"
)

// maxGrouping bounds how many BSDAs one BSDA may group.
const maxGrouping = 500

// InputRequest is the body of POST /bsdas and PATCH /bsdas/{id}.
type InputRequest struct {
	models.Input
}

// Normalize trims relation identifiers. Company and waste fields are kept
// as sent so a repost of the stored document diffs to nothing.
func (r *InputRequest) Normalize() {
	for i, id := range r.Grouping {
		r.Grouping[i] = strings.TrimSpace(id)
	}
	if r.Forwarding != nil {
		trimmed := strings.TrimSpace(*r.Forwarding)
		r.Forwarding = &trimmed
	}
}

func (r *InputRequest) Validate() error {
	if len(r.Grouping) > maxGrouping {
		return dErrors.New(dErrors.CodeValidation, "grouping must list at most 500 bsdas")
	}
	for _, id := range r.Grouping {
		if id == "" {
			return dErrors.New(dErrors.CodeValidation, "grouping cannot contain an empty identifier")
		}
	}
	if len(r.Grouping) > 0 && r.Forwarding != nil && *r.Forwarding != "" {
		return dErrors.New(dErrors.CodeValidation, "a bsda cannot both group and forward bsdas")
	}
	if r.Type != nil {
		switch *r.Type {
		case models.TypeCollection2710, models.TypeOtherCollections, models.TypeGathering, models.TypeReshipment:
		default:
			return dErrors.New(dErrors.CodeValidation, "unknown bsda type: "+*r.Type)
		}
	}
	return nil
}

// SignRequest is the body of POST /bsdas/{id}/signatures.
type SignRequest struct {
	Type string `json:"type"`

	stage edition.SignatureType
}

func (r *SignRequest) Normalize() {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
}

func (r *SignRequest) Validate() error {
	if r.Type == "" {
		return dErrors.New(dErrors.CodeValidation, "type is required")
	}
	stage, err := edition.ParseSignatureType(r.Type)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "")
	}
	r.stage = stage
	return nil
}

// Stage returns the validated signature type.
func (r *SignRequest) Stage() edition.SignatureType {
	return r.stage
}
