package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts s into a canonical comparable form: NFD-decomposed with
// combining marks dropped, lower-cased, every run of non-alphanumeric
// characters collapsed to a single space, trimmed.
//
// Total and idempotent: Normalize(Normalize(x)) == Normalize(x) for any input.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		} else {
			pendingSpace = true
		}
	}

	return b.String()
}

// Tokenize returns the normalized tokens of s.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}

// tokenSet builds a membership set from normalized tokens.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
