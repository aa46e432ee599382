// Package sentinel holds the storage facts services translate into domain
// errors. Stores return them wrapped; validation failures use
// pkg/domain-errors directly.
package sentinel

import "errors"

var (
	// ErrNotFound: no document with that identifier.
	ErrNotFound = errors.New("not found")
	// ErrConflict: the identifier is taken, or a concurrent transaction won.
	ErrConflict = errors.New("conflict")
)
