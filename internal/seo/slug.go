// Package seo holds the pure formatting helpers used when composing and
// publishing pages: slug generation, schema.org JSON-LD fragments, and
// meta tag builders.
package seo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold strips combining marks so accented city names slug cleanly
// ("São Paulo" -> "sao paulo").
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug joins the non-empty parts into a single lowercase, hyphen-separated
// token containing only [a-z0-9-], with no leading, trailing, or duplicate
// hyphens. Always succeeds; an empty input produces an empty string.
func Slug(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	s := strings.ToLower(strings.Join(kept, "-"))
	if folded, _, err := transform.String(asciiFold, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppresses a leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
