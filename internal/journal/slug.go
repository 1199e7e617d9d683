package journal

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	slugCollapse   = regexp.MustCompile(`-{2,}`)

	// Decompose and drop combining marks so "Café" and "Cafe" share a slug.
	slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify derives the URL-safe identity of a tag from its raw spelling.
// The result is lowercase ASCII with single hyphens between words; a tag
// that folds down to nothing gets the placeholder slug "tag".
func Slugify(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if folded, _, err := transform.String(slugFolder, s); err == nil {
		s = folded
	}
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "tag"
	}
	return s
}
