// Package strings holds small helpers for identifier lists.
package strings

import (
	"strings"
)

// DedupeAndTrim trims every value and drops blanks and repeats, keeping the
// first occurrence order. Nil and empty inputs are returned as is.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	return result
}

// Sirets normalizes company identifiers as typed by users: spaces inside
// the number are removed, then the list is deduplicated.
func Sirets(values []string) []string {
	if len(values) == 0 {
		return values
	}
	compact := make([]string, len(values))
	for i, v := range values {
		compact[i] = strings.ReplaceAll(v, " ", "")
	}
	return DedupeAndTrim(compact)
}
