package edition

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
	"unicode"
	"unicode/utf8"
)

// Record is a document, or a document input, expressed as nested values.
// Values are Record, []any, time.Time or scalars (string, bool, numbers, nil).
type Record map[string]any

// Diff returns what changed between before and after. Only keys present in
// after are compared: a key missing from after is never reported, whatever
// its value in before. Nested records surface only their changed leaves,
// lists are reported whole. Stored documents drop empty lists, so an empty
// list against a missing or null one is unchanged.
func Diff(before, after Record) Record {
	out := Record{}
	for key, next := range after {
		prev, hadPrev := before[key]
		switch nv := next.(type) {
		case Record:
			pr, _ := prev.(Record)
			if sub := Diff(pr, nv); len(sub) > 0 {
				out[key] = sub
			}
		case []any:
			if len(nv) == 0 && prev == nil {
				continue
			}
			pl, ok := prev.([]any)
			if !ok || !listEqual(pl, nv) {
				out[key] = nv
			}
		case time.Time:
			pt, ok := prev.(time.Time)
			if !hadPrev || !ok || !pt.Equal(nv) {
				out[key] = nv
			}
		default:
			if !scalarEqual(prev, next) {
				out[key] = next
			}
		}
	}
	return out
}

// Equal reports deep equality with the same rules Diff applies. Inside
// records a missing key equals null or an empty list.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case Record:
		bv, ok := b.(Record)
		if !ok {
			return false
		}
		for k, v := range av {
			if !Equal(v, bv[k]) {
				return false
			}
		}
		for k, w := range bv {
			if _, ok := av[k]; !ok && !Equal(nil, w) {
				return false
			}
		}
		return true
	case []any:
		if b == nil {
			return len(av) == 0
		}
		bv, ok := b.([]any)
		return ok && listEqual(av, bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	default:
		if a == nil && isEmptyList(b) {
			return true
		}
		return scalarEqual(a, b)
	}
}

func isEmptyList(v any) bool {
	l, ok := v.([]any)
	return ok && len(l) == 0
}

func listEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	switch a.(type) {
	case string, bool:
		return a == b
	}
	// Not a comparable scalar: treated as changed.
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Flatten lists the field paths of a diff. Nested keys are joined camel case
// (emitter.company.name gives emitterCompanyName); lists are leaves.
func Flatten(diff Record) []string {
	var paths []string
	flatten(diff, "", &paths)
	sort.Strings(paths)
	return paths
}

func flatten(r Record, prefix string, paths *[]string) {
	for key, v := range r {
		path := joinPath(prefix, key)
		if sub, ok := v.(Record); ok && len(sub) > 0 {
			flatten(sub, path, paths)
			continue
		}
		*paths = append(*paths, path)
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	r, size := utf8.DecodeRuneInString(key)
	return prefix + string(unicode.ToUpper(r)) + key[size:]
}

// Merge applies diff onto base and returns the result. base is not mutated.
func Merge(base, diff Record) Record {
	out := make(Record, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range diff {
		sub, ok := v.(Record)
		if !ok {
			out[k] = v
			continue
		}
		prev, _ := out[k].(Record)
		out[k] = Merge(prev, sub)
	}
	return out
}

// Decode re-expresses a record as a typed input. Keys map to the json tags of
// out.
func Decode(rec Record, out any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
