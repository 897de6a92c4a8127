package locality

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a locality string, strips accents, punctuation and
// symbols, and collapses runs of whitespace into single spaces. All
// locality comparisons and table lookups go through this so that
// "St. Paul" and "st paul" compare equal.
func Normalize(s string) string {
	s, _, _ = transform.String(stripAccents, strings.ToLower(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
