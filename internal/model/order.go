package model

import (
	"slices"
	"unicode/utf16"
)

// SortedKeys returns map keys in canonical order (UTF-16 code units).
// CRITICAL: never iterate theme or slot maps directly; Go randomizes map order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareCanonical)
	return keys
}

// CompareCanonical compares strings by UTF-16 code units, the RFC 8785 key
// order. For ASCII it agrees with plain byte comparison.
func CompareCanonical(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
