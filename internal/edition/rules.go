package edition

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Rule states after which signature a field is sealed.
type Rule struct {
	Sealed SignatureType
	// ReadableName is used in violation messages instead of the field path.
	ReadableName string
}

// Table maps every editable field of a document type to its Rule.
type Table[F ~string] map[F]Rule

// Fields returns the governed fields, sorted.
func (t Table[F]) Fields() []F {
	out := make([]F, 0, len(t))
	for f := range t {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Policy binds a document type's chain to its rule table.
type Policy[F ~string] struct {
	Kind  string
	Chain Chain
	Rules Table[F]
}

// Validate checks the policy is usable: a non-empty chain without duplicates
// and rules that only reference stages of that chain.
func (p Policy[F]) Validate() error {
	if len(p.Chain) == 0 {
		return fmt.Errorf("%s: empty signature chain", p.Kind)
	}
	seen := make(map[SignatureType]struct{}, len(p.Chain))
	for _, s := range p.Chain {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%s: duplicate stage %s in chain", p.Kind, s)
		}
		seen[s] = struct{}{}
	}
	for f, r := range p.Rules {
		if !p.Chain.Contains(r.Sealed) {
			return fmt.Errorf("%s: field %s sealed by %s which is not in the chain", p.Kind, f, r.Sealed)
		}
	}
	return nil
}

// stageOf returns the stage sealing a flattened field path. Paths missing
// from the table are sealed from the first stage.
func (p Policy[F]) stageOf(field string) SignatureType {
	if r, ok := p.Rules[F(field)]; ok {
		return r.Sealed
	}
	return p.Chain[0]
}

func (p Policy[F]) describe(field string) string {
	if r, ok := p.Rules[F(field)]; ok && r.ReadableName != "" {
		return capitalize(r.ReadableName)
	}
	return "Le champ " + field
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
