package edition

import "sort"

// Seal is an ad hoc sealing rule checked in addition to the rule table, for
// fields whose lock depends on one specific signature rather than on the
// generic stage walk (reassigning a transport leg, for instance).
type Seal func(changed []string) []Violation

// Request is one edit attempt.
type Request struct {
	// Signatures is the persisted document.
	Signatures Signed
	// Current is the persisted document in input shape.
	Current Record
	// Proposed is the edit as received. Keys it omits are left untouched.
	Proposed Record
	// Bypass is computed by the document type from the editor and the
	// document before the stage walk.
	Bypass Bypass
	Seals  []Seal
}

// Bypass widens the editable window of one editor. Reopened stages produce
// no violation at all; Fields are exempted individually whatever their stage.
type Bypass struct {
	Reopened []SignatureType
	Fields   []string
}

func (b Bypass) exempt() map[string]bool {
	set := make(map[string]bool, len(b.Fields))
	for _, f := range b.Fields {
		set[f] = true
	}
	return set
}

// Changes is what an accepted edit actually changes.
type Changes struct {
	Fields []string
	Diff   Record
}

// Empty reports whether the edit changes nothing.
func (c Changes) Empty() bool {
	return len(c.Fields) == 0
}

// Has reports whether field is among the changed paths.
func (c Changes) Has(field string) bool {
	for _, f := range c.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Check decides whether an edit may be applied. It returns the changed
// fields, which are the only ones the caller should persist, or a
// dErrors.CodeSealedFields error wrapping a *SealedFieldsError that lists
// every sealed field the edit touches.
func Check[F ~string](p Policy[F], req Request) (Changes, error) {
	diff := Diff(req.Current, req.Proposed)
	changes := Changes{Fields: Flatten(diff), Diff: diff}
	if changes.Empty() || p.Chain.IsInitial(req.Signatures) {
		return changes, nil
	}

	acc := p.walk(changes.Fields, req.Signatures, req.Bypass, nil)
	for _, seal := range req.Seals {
		acc = append(acc, seal(changes.Fields)...)
	}
	if len(acc) > 0 {
		return Changes{}, wrapSealed(acc)
	}
	return changes, nil
}

// walk visits the chain in order until the first awaited stage. Every changed
// field sealed by a visited stage is appended to acc.
func (p Policy[F]) walk(fields []string, doc Signed, bypass Bypass, acc []Violation) []Violation {
	awaiting := p.Chain.awaiting(doc)
	reopened := stageSet(bypass.Reopened)
	exempt := bypass.exempt()
	for i, stage := range p.Chain {
		if awaiting[i] {
			break
		}
		if reopened[stage] {
			continue
		}
		acc = p.sealedAt(stage, fields, exempt, acc)
	}
	return acc
}

func (p Policy[F]) sealedAt(stage SignatureType, fields []string, exempt map[string]bool, acc []Violation) []Violation {
	for _, f := range fields {
		if exempt[f] || p.stageOf(f) != stage {
			continue
		}
		acc = append(acc, Violation{
			Field:   f,
			Message: p.describe(f) + " a été verrouillé via signature et ne peut pas être modifié.",
		})
	}
	return acc
}

// SealedFields lists the fields of the table that doc currently seals for an
// editor granted bypass.
func SealedFields[F ~string](p Policy[F], doc Signed, bypass Bypass) []F {
	sealing := make(map[SignatureType]bool)
	skip := stageSet(bypass.Reopened)
	for _, s := range p.Chain.Resolved(doc) {
		if !skip[s] {
			sealing[s] = true
		}
	}
	exempt := bypass.exempt()
	var out []F
	for f, r := range p.Rules {
		if sealing[r.Sealed] && !exempt[string(f)] {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func stageSet(stages []SignatureType) map[SignatureType]bool {
	set := make(map[SignatureType]bool, len(stages))
	for _, s := range stages {
		set[s] = true
	}
	return set
}
