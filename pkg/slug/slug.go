package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Letters that do not decompose into a base letter plus a combining mark.
var letterReplacer = strings.NewReplacer("ı", "i", "ß", "ss", "ø", "o", "æ", "ae", "œ", "oe", "đ", "d", "ł", "l")

// Generate creates a URL-friendly slug from the given name. Accents are
// folded to their ASCII base letter and every run of other characters
// becomes a single hyphen.
//
// Examples:
//   - "Men's Fashion" → "men-s-fashion"
//   - "Électronique" → "electronique"
//   - "Kadın Giyim" → "kadin-giyim"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = letterReplacer.Replace(s)

	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	s = slugRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Equal reports whether two display names produce the same slug. Category
// and brand filters compare names this way.
func Equal(a, b string) bool {
	return Generate(a) == Generate(b)
}
