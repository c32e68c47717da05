// Package phone reformats raw telephone strings for display.
package phone

import "strings"

// Format regroups a raw telephone string into the international display form
// "+CC ZZZ SS SS ..": a two-character country code prefixed with "+", a
// three-character zone number, and the remaining characters in pairs.
// The split is purely positional; no numbering-plan validation is done.
// When enabled is false the input passes through unchanged.
//
// Inputs shorter than five characters yield shorter or empty segments; the
// three segments are always joined by single spaces.
func Format(raw string, enabled bool) string {
	if !enabled {
		return raw
	}

	country := "+" + clip(raw, 0, 2)
	zone := clip(raw, 2, 5)
	subscriber := pairs(clip(raw, 5, len(raw)))

	return country + " " + zone + " " + subscriber
}

// clip returns raw[lo:hi] with both bounds clamped to len(raw).
func clip(raw string, lo, hi int) string {
	if lo > len(raw) {
		lo = len(raw)
	}
	if hi > len(raw) {
		hi = len(raw)
	}
	if hi < lo {
		hi = lo
	}
	return raw[lo:hi]
}

// pairs splits s into space-separated groups of two characters.
// An odd trailing character stands alone as its own group.
func pairs(s string) string {
	if s == "" {
		return ""
	}
	groups := make([]string, 0, len(s)/2+1)
	for i := 0; i < len(s); i += 2 {
		end := i + 2
		if end > len(s) {
			end = len(s)
		}
		groups = append(groups, s[i:end])
	}
	return strings.Join(groups, " ")
}
