// Package slug derives filesystem-safe names from free-form catalog text.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SongExtra is the extra character set allowed in song title and artist slugs.
const SongExtra = "&"

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Make turns raw text into a lowercase slug containing only ASCII letters,
// digits, hyphens and the characters in allowExtra. Diacritics are folded onto
// their base letters and whitespace runs collapse into a single hyphen. Make is
// total: it never fails and maps empty input to the empty string.
func Make(raw string, allowExtra string) string {
	decomposed, _, err := transform.String(stripMarks, raw)
	if err != nil {
		// NFD cannot fail on valid UTF-8; keep the input on malformed bytes
		decomposed = raw
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	inSpace := false
	for _, r := range decomposed {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case strings.ContainsRune(allowExtra, r):
			b.WriteRune(r)
		}
	}

	return strings.ToLower(b.String())
}
