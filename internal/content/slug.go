// File path: internal/content/slug.go
package content

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug: lowercase, diacritics folded, runs of
// non-alphanumerics collapsed to a single hyphen, no leading or trailing
// hyphen.
func Slugify(title string) string {
	folded, _, err := transform.String(slugFolder, strings.TrimSpace(title))
	if err != nil {
		folded = title
	}
	lower := strings.ToLower(folded)
	var b strings.Builder
	b.Grow(len(lower))
	pendingHyphen := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// SlugWithSuffix appends a short random fragment used for the single retry
// after a unique-constraint collision.
func SlugWithSuffix(slug string) string {
	if slug == "" {
		slug = "untitled"
	}
	return fmt.Sprintf("%s-%d", slug, rand.Intn(900)+100)
}
