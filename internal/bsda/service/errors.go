package service

import (
	"errors"

	"bordereau/internal/bsda/models"
	"bordereau/internal/edition"
	dErrors "bordereau/pkg/domain-errors"
	"bordereau/pkg/platform/sentinel"
)

// wrapStoreErr translates store sentinels into domain codes.
func wrapStoreErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "bsda not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "bsda was modified concurrently")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

// wrapTxErr keeps coded errors and reports serialization failures, which
// surface outside any domain wrapper, as conflicts.
func wrapTxErr(err error) error {
	if errors.Is(err, sentinel.ErrConflict) && !dErrors.HasCode(err, dErrors.CodeConflict) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "bsda was modified concurrently, retry")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "bsda transaction failed")
}

func wrapSignErr(err error, stage edition.SignatureType) error {
	switch {
	case errors.Is(err, models.ErrAlreadySigned):
		return dErrors.Wrap(err, dErrors.CodeConflict, "signature "+stage.String()+" already captured")
	case errors.Is(err, models.ErrStagePassed):
		return dErrors.Wrap(err, dErrors.CodeConflict, "signature "+stage.String()+" can no longer be captured")
	case errors.Is(err, models.ErrUnknownStage):
		return dErrors.Wrap(err, dErrors.CodeValidation, "signature "+stage.String()+" does not apply to a bsda")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign bsda")
	}
}
