// Package slug normalizes tag names into URL-safe path segments.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Make converts a display name into a slug: unicode-normalized, case-folded,
// with whitespace runs collapsed to single hyphens and unsafe runes dropped.
// Two tags differing only in case or spacing map to the same slug.
func Make(name string) string {
	s := norm.NFKC.String(name)
	s = lower.String(strings.TrimSpace(s))

	var sb strings.Builder
	pendingHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			pendingHyphen = true
		default:
			// drop punctuation
		}
	}
	return sb.String()
}
