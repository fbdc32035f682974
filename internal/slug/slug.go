// Package slug derives URL-safe identifiers from human-readable titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize converts a title into a lowercase, hyphen-separated slug.
//
// Accented characters are decomposed and their combining marks dropped, so
// "Olá" becomes "ola". Anything other than ASCII letters, digits and
// separators is removed. Runs of whitespace, hyphens and underscores
// collapse into a single hyphen, and the result never starts or ends with
// one. Input without any letter or digit yields an empty string.
func Normalize(title string) string {
	// transform.Chain keeps internal state, so it is built per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, title)
	if err != nil {
		decomposed = title
	}

	var b strings.Builder
	b.Grow(len(decomposed))

	pendingSeparator := false
	for _, r := range decomposed {
		switch {
		case isASCIIAlnum(r):
			if pendingSeparator && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSeparator = false
			b.WriteRune(unicode.ToLower(r))
		case isSeparator(r):
			pendingSeparator = true
		}
	}

	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}
