// Package names normalizes and fuzzily compares player names. Matching is
// deliberately narrow: normalized equality, or same last name with a shared
// first initial. Anything looser produces false positives among common
// surnames on large rosters.
package names

import (
	"regexp"
	"strings"
)

var (
	suffixRe   = regexp.MustCompile(`(?i)\s+(jr|sr|ii|iii|iv|v)\.?$`)
	nonAlphaRe = regexp.MustCompile(`[^a-z\s]`)
)

// Normalize lowercases a name, strips generational suffixes and non-alphabetic
// characters, and collapses it to first + last token only.
func Normalize(name string) string {
	name = suffixRe.ReplaceAllString(name, "")

	parts := strings.Fields(name)
	if len(parts) > 2 {
		name = parts[0] + " " + parts[len(parts)-1]
	}

	name = strings.ToLower(name)
	name = nonAlphaRe.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// Match reports whether two names refer to the same player: equal normalized
// forms, or equal last names with matching first initials (so "M. Smith"
// matches "Mike Smith"). No substring matching beyond that.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	pa, pb := strings.Fields(na), strings.Fields(nb)
	if len(pa) == 2 && len(pb) == 2 {
		if pa[1] == pb[1] && pa[0][0] == pb[0][0] {
			return true
		}
	}
	return false
}
