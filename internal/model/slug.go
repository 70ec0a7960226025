package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes to NFKD and strips combining marks, giving a
// best-effort ASCII transliteration of accented Latin text.
var deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Slugify converts a place name and optional neighborhood (pass "" for
// none) into a URL-safe slug. Characters with no ASCII equivalent are
// dropped rather than substituted, so all-symbol names legally yield an
// empty slug; uniqueness policy over slugs is the caller's concern.
func Slugify(name, neighborhood string) string {
	base := strings.ToLower(strings.TrimSpace(name + " " + neighborhood))

	if folded, _, err := transform.String(deaccent, base); err == nil {
		base = folded
	}

	var b strings.Builder
	b.Grow(len(base))
	pendingHyphen := false
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		if r < 0x80 {
			// ASCII punctuation and whitespace separate words.
			pendingHyphen = true
		}
		// Non-ASCII leftovers are dropped entirely.
	}
	return b.String()
}
