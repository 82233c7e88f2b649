// File path: internal/content/shortcode.go
package content

import (
	"regexp"
	"strings"
)

// The product-card shortcode is the one embedded mini-format the engine
// recognises inside stored markup: the literal marker followed by a slug
// token. It is both the render-time embed hook and the referential anchor
// the integrity checker audits.
const (
	shortcodePrefix = "{{PRODUCT_CARD:"
	shortcodeSuffix = "}}"
)

var shortcodePattern = regexp.MustCompile(`\{\{PRODUCT_CARD:([a-z0-9]+(?:-[a-z0-9]+)*)\}\}`)

// ProductCard renders the shortcode for a product slug.
func ProductCard(slug string) string {
	return shortcodePrefix + slug + shortcodeSuffix
}

// ProductSlugs returns every product slug referenced by a shortcode in the
// markup, in document order, duplicates preserved.
func ProductSlugs(markup string) []string {
	matches := shortcodePattern.FindAllStringSubmatch(markup, -1)
	if len(matches) == 0 {
		return nil
	}
	slugs := make([]string, 0, len(matches))
	for _, m := range matches {
		slugs = append(slugs, m[1])
	}
	return slugs
}

// ReplaceProductSlug rewrites every shortcode referencing old so it points at
// replacement, returning the updated markup and the number of substitutions.
func ReplaceProductSlug(markup, old, replacement string) (string, int) {
	from := ProductCard(old)
	count := strings.Count(markup, from)
	if count == 0 {
		return markup, 0
	}
	return strings.ReplaceAll(markup, from, ProductCard(replacement)), count
}
