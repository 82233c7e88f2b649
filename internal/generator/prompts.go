// File path: internal/generator/prompts.go
package generator

import (
	"fmt"
	"strings"

	"github.com/sileaweb/content-engine/internal/content"
)

// OutlinePrompt builds the editorial-planning prompt. The outline follows a
// fixed four-stage narrative arc and must keep the placeholder markers
// inline so editors can slot internal links and imagery later.
func OutlinePrompt(title, keyword, audience, angle string) string {
	b := &strings.Builder{}
	b.WriteString("You are an expert content strategist for an e-commerce store.\n")
	fmt.Fprintf(b, "Draft a detailed outline for an article titled %q targeting the keyword %q.\n", title, keyword)
	if strings.TrimSpace(audience) != "" {
		fmt.Fprintf(b, "The target audience is: %s.\n", audience)
	}
	if strings.TrimSpace(angle) != "" {
		fmt.Fprintf(b, "Editorial angle: %s.\n", angle)
	}
	b.WriteString(`
Structure the outline as a four-stage narrative arc:
1. Hook: open with the reader's problem or desire.
2. Exploration: develop the topic and build trust.
3. Solution tie-in: connect the topic naturally to our products.
4. Call to action: close with a clear next step.

Rules:
- Output only HTML markup (h2/h3 headings with brief bullet notes), no document wrapper tags.
- Insert the marker [SOFT_CTA] once mid-article where a gentle internal link fits.
- Insert the marker [HARD_CTA] once near the close where a direct product link fits.
- Insert [IMAGE: short description] markers wherever an illustration would help.
- Do not add any commentary before or after the markup.`)
	return b.String()
}

// PillarPrompt embeds compact summaries of the candidate cluster so the
// model can weave product embeds and article references into the body.
func PillarPrompt(topic, title, seoDescription string, products []content.Product, articles []content.Article) string {
	b := &strings.Builder{}
	b.WriteString("You are writing the authoritative pillar page for an e-commerce content cluster.\n")
	fmt.Fprintf(b, "Topic: %s\nTitle: %s\n", topic, title)
	if strings.TrimSpace(seoDescription) != "" {
		fmt.Fprintf(b, "SEO description to honour: %s\n", seoDescription)
	}
	if len(products) > 0 {
		b.WriteString("\nCandidate products (id | name | slug | price | description):\n")
		for _, p := range products {
			fmt.Fprintf(b, "- %s | %s | %s | %.2f | %s\n", p.ID, p.Name, p.Slug, p.Price, p.ShortDescription)
		}
	}
	if len(articles) > 0 {
		b.WriteString("\nRelated articles (title | slug | excerpt):\n")
		for _, a := range articles {
			fmt.Fprintf(b, "- %s | %s | %s\n", a.Title, a.Slug, a.Excerpt)
		}
	}
	b.WriteString(`
Rules:
- Output only body markup (h2/h3/p/ul), never html/head/body wrapper tags.
- Where a product should be visually embedded, place the shortcode {{PRODUCT_CARD:<slug>}} on its own line using the product's slug exactly as listed.
- Reference related articles naturally in the prose.
- Write in an approachable, persuasive tone; no commentary outside the markup.`)
	return b.String()
}

// ArticleMetadataPrompt requests the structured metadata for one support
// article as strict JSON.
func ArticleMetadataPrompt(title, topic string, keywords []string) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Generate the publishing metadata for a support article titled %q", title)
	if strings.TrimSpace(topic) != "" {
		fmt.Fprintf(b, " in the topic cluster %q", topic)
	}
	b.WriteString(".\n")
	if len(keywords) > 0 {
		fmt.Fprintf(b, "Target keywords: %s.\n", strings.Join(keywords, ", "))
	}
	b.WriteString(`
Respond with a single strict JSON object and nothing else:
{"subtitle": "...", "seo_title": "...", "seo_description": "...", "excerpt": "...", "tags": ["...", "..."]}`)
	return b.String()
}

// ArticleBodyPrompt requests the full article body. The body must link back
// to the pillar page so the cluster stays connected from day one.
func ArticleBodyPrompt(title, subtitle, topic string, keywords []string, pillarURL, pillarTitle string) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Write the full body for a support article titled %q.\n", title)
	if strings.TrimSpace(subtitle) != "" {
		fmt.Fprintf(b, "Subtitle: %s\n", subtitle)
	}
	if strings.TrimSpace(topic) != "" {
		fmt.Fprintf(b, "Topic cluster: %s\n", topic)
	}
	if len(keywords) > 0 {
		fmt.Fprintf(b, "Target keywords: %s\n", strings.Join(keywords, ", "))
	}
	fmt.Fprintf(b, `
Rules:
- Output only body markup (h2/h3/p/ul), no wrapper tags, no commentary.
- Embed at least one link to the pillar page <a href=%q>%s</a> on a natural anchor phrase.
- Keep paragraphs short and scannable.`, pillarURL, pillarTitle)
	return b.String()
}
