// Package coerce converts textual env values to their most specific primitive type.
package coerce

import (
	"math"
	"strconv"
)

// Value coerces a trimmed textual value to a number, boolean, or string.
// Tried in priority order:
//   - non-empty string that fully parses as a finite numeric literal → float64
//   - exact "true" → true
//   - exact "false" → false
//   - anything else → the string unchanged
//
// The empty string never coerces to zero; boolean matching is case-sensitive,
// so "True" and "FALSE" stay strings. The order matters: "1" is a number, not
// a truthy value. Non-finite spellings ("Infinity", "NaN") stay strings: the
// plain-data contract admits only values JSON can represent.
func Value(s string) any {
	if s != "" {
		if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
			return n
		}
	}
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	return s
}
