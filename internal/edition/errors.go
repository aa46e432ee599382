package edition

import (
	"errors"
	"strings"

	dErrors "bordereau/pkg/domain-errors"
	pstrings "bordereau/pkg/platform/strings"
)

const sealedFieldsMessage = "Des champs ont été verrouillés via signature et ne peuvent plus être modifiés : "

// Violation is one sealed field an edit attempted to change.
type Violation struct {
	Field   string
	Message string
}

// SealedFieldsError lists every sealed field a single edit attempted to
// change.
type SealedFieldsError struct {
	Violations []Violation
}

func newSealedFieldsError(acc []Violation) *SealedFieldsError {
	seen := make(map[Violation]struct{}, len(acc))
	out := make([]Violation, 0, len(acc))
	for _, v := range acc {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return &SealedFieldsError{Violations: out}
}

// Fields returns the deduplicated violating field paths in discovery order.
func (e *SealedFieldsError) Fields() []string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return pstrings.DedupeAndTrim(fields)
}

// Messages returns one human readable message per violation.
func (e *SealedFieldsError) Messages() []string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return pstrings.DedupeAndTrim(msgs)
}

func (e *SealedFieldsError) Error() string {
	return sealedFieldsMessage + strings.Join(e.Fields(), ", ")
}

// AsSealedFields extracts the SealedFieldsError from an error chain.
func AsSealedFields(err error) (*SealedFieldsError, bool) {
	var sfe *SealedFieldsError
	if errors.As(err, &sfe) {
		return sfe, true
	}
	return nil, false
}

func wrapSealed(acc []Violation) error {
	return dErrors.Wrap(newSealedFieldsError(acc), dErrors.CodeSealedFields, "")
}
