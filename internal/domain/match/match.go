// Package match holds the per-field comparison rules used by list filters.
// A nil want never constrains.
package match

import "strings"

// Equal reports whether got equals *want.
func Equal[T comparable](want *T, got T) bool {
	return want == nil || *want == got
}

// EqualOptional reports whether got is set and equals *want.
func EqualOptional[T comparable](want *T, got *T) bool {
	if want == nil {
		return true
	}
	return got != nil && *got == *want
}

// Contains reports whether got contains *want, case-sensitively.
func Contains(want *string, got string) bool {
	return want == nil || strings.Contains(got, *want)
}

// ContainsAny reports whether any of got contains *want.
func ContainsAny(want *string, got ...string) bool {
	if want == nil {
		return true
	}
	for _, g := range got {
		if strings.Contains(g, *want) {
			return true
		}
	}
	return false
}
