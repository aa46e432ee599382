package handler

import (
	"strings"

	"bordereau/internal/bsff/models"
	"bordereau/internal/edition"
	dErrors "bordereau/pkg/domain-errors"
	strs "bordereau/pkg/platform/strings"
)

// InputRequest is the body of POST /bsffs and PATCH /bsffs/{id}.
type InputRequest struct {
	models.Input
}

func (r *InputRequest) Normalize() {
	trim(r.Grouping)
	trim(r.Forwarding)
	trim(r.Repackaging)
	r.FicheInterventions = strs.DedupeAndTrim(r.FicheInterventions)
	for i := range r.Transporters {
		r.Transporters[i].ID = strings.TrimSpace(r.Transporters[i].ID)
	}
}

func (r *InputRequest) Validate() error {
	relations := 0
	for _, ids := range [][]string{r.Grouping, r.Forwarding, r.Repackaging} {
		if len(ids) > 0 {
			relations++
		}
		for _, id := range ids {
			if id == "" {
				return dErrors.New(dErrors.CodeValidation, "packaging relations cannot contain an empty identifier")
			}
		}
	}
	if relations > 1 {
		return dErrors.New(dErrors.CodeValidation, "grouping, forwarding and repackaging are mutually exclusive")
	}
	if r.Type != nil {
		switch *r.Type {
		case models.TypeCollectePetitesQuantites, models.TypeTracerFluide, models.TypeGroupement,
			models.TypeReconditionnement, models.TypeReexpedition:
		default:
			return dErrors.New(dErrors.CodeValidation, "unknown bsff type: "+*r.Type)
		}
	}
	seen := make(map[string]bool, len(r.Transporters))
	for _, t := range r.Transporters {
		if t.ID == "" {
			continue
		}
		if seen[t.ID] {
			return dErrors.New(dErrors.CodeValidation, "transporter "+t.ID+" is listed twice")
		}
		seen[t.ID] = true
	}
	return nil
}

// PackagingRequest is the body of PATCH /bsffs/{id}/packagings/{packagingID}.
type PackagingRequest struct {
	models.PackagingInput
}

func (r *PackagingRequest) Normalize() {
	trim(r.PreviousPackagings)
	if r.Acceptation != nil && r.Acceptation.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*r.Acceptation.Status))
		r.Acceptation.Status = &status
	}
}

func (r *PackagingRequest) Validate() error {
	a := r.Acceptation
	if a == nil || a.Status == nil {
		return nil
	}
	switch *a.Status {
	case models.AcceptationAccepted:
	case models.AcceptationRefused:
		if a.RefusalReason == nil || strings.TrimSpace(*a.RefusalReason) == "" {
			return dErrors.New(dErrors.CodeValidation, "a refused packaging needs a refusal reason")
		}
	default:
		return dErrors.New(dErrors.CodeValidation, "unknown acceptation status: "+*a.Status)
	}
	return nil
}

// SignRequest is the body of the signature endpoints.
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

func (r *SignRequest) Stage() edition.SignatureType {
	return r.stage
}

func trim(ids []string) {
	for i, id := range ids {
		ids[i] = strings.TrimSpace(id)
	}
}
