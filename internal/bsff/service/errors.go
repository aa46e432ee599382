package service

import (
	"errors"

	"bordereau/internal/bsff/models"
	dErrors "bordereau/pkg/domain-errors"
	"bordereau/pkg/platform/sentinel"
)

func wrapStoreErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "bsff not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "bsff was modified concurrently")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

// wrapTxErr keeps coded errors and reports serialization failures as
// conflicts.
func wrapTxErr(err error) error {
	if errors.Is(err, sentinel.ErrConflict) && !dErrors.HasCode(err, dErrors.CodeConflict) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "bsff was modified concurrently, retry")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "bsff transaction failed")
}

func wrapSignErr(err error) error {
	switch {
	case errors.Is(err, models.ErrAlreadySigned), errors.Is(err, models.ErrStagePassed):
		return dErrors.Wrap(err, dErrors.CodeConflict, "")
	case errors.Is(err, models.ErrPackagingNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "")
	case errors.Is(err, models.ErrUnknownStage),
		errors.Is(err, models.ErrNoTransporter),
		errors.Is(err, models.ErrNotReceived),
		errors.Is(err, models.ErrPackagingRefused):
		return dErrors.Wrap(err, dErrors.CodeValidation, "")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign bsff")
	}
}
