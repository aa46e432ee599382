package edition

import (
	"fmt"
	"time"
)

// SignatureType names one stage of a document's signature chain.
type SignatureType string

const (
	SignatureEmission    SignatureType = "EMISSION"
	SignatureWork        SignatureType = "WORK"
	SignatureTransport   SignatureType = "TRANSPORT"
	SignatureReception   SignatureType = "RECEPTION"
	SignatureAcceptation SignatureType = "ACCEPTATION"
	SignatureOperation   SignatureType = "OPERATION"
)

var signatureTypes = map[SignatureType]struct{}{
	SignatureEmission:    {},
	SignatureWork:        {},
	SignatureTransport:   {},
	SignatureReception:   {},
	SignatureAcceptation: {},
	SignatureOperation:   {},
}

// ParseSignatureType validates an external signature type.
func ParseSignatureType(s string) (SignatureType, error) {
	t := SignatureType(s)
	if _, ok := signatureTypes[t]; !ok {
		return "", fmt.Errorf("unknown signature type: %s", s)
	}
	return t, nil
}

func (t SignatureType) String() string {
	return string(t)
}

// Signed exposes the captured signature timestamps of a document. A nil
// timestamp means the stage has not been signed.
type Signed interface {
	SignedAt(SignatureType) *time.Time
}

// Signatures is a map-backed Signed, handy for documents assembled from
// several records.
type Signatures map[SignatureType]*time.Time

func (s Signatures) SignedAt(t SignatureType) *time.Time {
	return s[t]
}

// Chain is the fixed, ordered signature hierarchy of a document type.
//
// Skipping a stage is a runtime fact, not a change to the chain: a stage
// whose timestamp stays nil is resolved as soon as a later stage is signed.
type Chain []SignatureType

func (c Chain) index(t SignatureType) int {
	for i, s := range c {
		if s == t {
			return i
		}
	}
	return -1
}

// Contains reports whether t belongs to the chain.
func (c Chain) Contains(t SignatureType) bool {
	return c.index(t) >= 0
}

// Next returns the stage following t, if any.
func (c Chain) Next(t SignatureType) (SignatureType, bool) {
	i := c.index(t)
	if i < 0 || i == len(c)-1 {
		return "", false
	}
	return c[i+1], true
}

// IsAwaitingSignature reports whether stage is still awaited on doc: its own
// timestamp is nil and no later stage has been signed. Stages outside the
// chain are never awaited.
func (c Chain) IsAwaitingSignature(stage SignatureType, doc Signed) bool {
	i := c.index(stage)
	if i < 0 {
		return false
	}
	for _, s := range c[i:] {
		if doc.SignedAt(s) != nil {
			return false
		}
	}
	return true
}

// awaiting folds the chain backwards once: awaiting[i] is true when stage i
// and every later stage are unsigned.
func (c Chain) awaiting(doc Signed) []bool {
	out := make([]bool, len(c))
	next := true
	for i := len(c) - 1; i >= 0; i-- {
		next = next && doc.SignedAt(c[i]) == nil
		out[i] = next
	}
	return out
}

// Resolved lists, in chain order, every stage that is no longer awaited.
func (c Chain) Resolved(doc Signed) []SignatureType {
	var out []SignatureType
	for i, awaited := range c.awaiting(doc) {
		if awaited {
			break
		}
		out = append(out, c[i])
	}
	return out
}

// Current returns the last signed stage of doc.
func (c Chain) Current(doc Signed) (SignatureType, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if doc.SignedAt(c[i]) != nil {
			return c[i], true
		}
	}
	return "", false
}

// IsInitial reports whether no stage of the chain has been signed yet.
func (c Chain) IsInitial(doc Signed) bool {
	_, signed := c.Current(doc)
	return !signed
}
