// File path: internal/integrity/integrity.go
// Package integrity audits product-card shortcodes embedded in live pillar
// content. A shortcode is broken when its slug no longer resolves to a
// product, which happens when products are deleted or re-slugged outside
// the engine.
package integrity

import (
	"context"
	"fmt"

	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/content"
	"github.com/sileaweb/content-engine/internal/metrics"
)

// Store is the catalog slice the checker reads and repairs through.
type Store interface {
	Pillars(ctx context.Context) ([]content.Pillar, error)
	ProductSlugs(ctx context.Context) ([]string, error)
	UpdatePillarLive(ctx context.Context, id, body string) error
}

type Checker struct {
	store Store
}

func New(store Store) *Checker {
	return &Checker{store: store}
}

// Issue is one dangling shortcode found in a pillar's live content.
type Issue struct {
	PillarTitle       string `json:"pillar_title"`
	PillarSlug        string `json:"pillar_slug"`
	BrokenProductSlug string `json:"broken_product_slug"`
}

// Scan walks every pillar's live content and reports each shortcode
// occurrence whose slug has no matching product. A slug referenced twice in
// one pillar yields two issues: the health count measures occurrences, not
// distinct slugs.
func (c *Checker) Scan(ctx context.Context) ([]Issue, error) {
	pillars, err := c.store.Pillars(ctx)
	if err != nil {
		return nil, fmt.Errorf("integrity scan: %w", err)
	}
	valid, err := c.validSlugs(ctx)
	if err != nil {
		return nil, err
	}
	issues := []Issue{}
	for _, pillar := range pillars {
		for _, slug := range content.ProductSlugs(pillar.Live) {
			if valid[slug] {
				continue
			}
			issues = append(issues, Issue{
				PillarTitle:       pillar.Title,
				PillarSlug:        pillar.Slug,
				BrokenProductSlug: slug,
			})
		}
	}
	metrics.BrokenProductLinks.Set(float64(len(issues)))
	return issues, nil
}

// RepairResult reports a repair pass.
type RepairResult struct {
	TotalBroken int `json:"total_broken"`
	TotalFixed  int `json:"total_fixed"`
}

// Repair rewrites every broken shortcode to reference a valid product and
// persists the updated pillar bodies. With no products in the catalog there
// is nothing to substitute, so broken references are counted but left as-is.
func (c *Checker) Repair(ctx context.Context) (RepairResult, error) {
	logger := common.Logger()
	pillars, err := c.store.Pillars(ctx)
	if err != nil {
		return RepairResult{}, fmt.Errorf("integrity repair: %w", err)
	}
	valid, err := c.validSlugs(ctx)
	if err != nil {
		return RepairResult{}, err
	}
	result := RepairResult{}
	for _, pillar := range pillars {
		body := pillar.Live
		changed := false
		for _, broken := range brokenSlugs(body, valid) {
			replacement, ok := pickReplacement(valid, broken)
			matches := countSlug(body, broken)
			result.TotalBroken += matches
			if !ok {
				continue
			}
			var n int
			body, n = content.ReplaceProductSlug(body, broken, replacement)
			result.TotalFixed += n
			changed = true
			logger.Info("integrity: rewrote product reference",
				"pillar", pillar.Slug, "from", broken, "to", replacement, "count", n)
		}
		if changed {
			if err := c.store.UpdatePillarLive(ctx, pillar.ID, body); err != nil {
				return result, fmt.Errorf("integrity repair: persist pillar %s: %w", pillar.ID, err)
			}
		}
	}
	metrics.BrokenProductLinks.Set(float64(result.TotalBroken - result.TotalFixed))
	return result, nil
}

func (c *Checker) validSlugs(ctx context.Context) (map[string]bool, error) {
	slugs, err := c.store.ProductSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("integrity: load product slugs: %w", err)
	}
	valid := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		valid[slug] = true
	}
	return valid, nil
}

// brokenSlugs returns the distinct invalid slugs referenced by markup, in
// first-appearance order.
func brokenSlugs(markup string, valid map[string]bool) []string {
	seen := map[string]bool{}
	broken := []string{}
	for _, slug := range content.ProductSlugs(markup) {
		if valid[slug] || seen[slug] {
			continue
		}
		seen[slug] = true
		broken = append(broken, slug)
	}
	return broken
}

func countSlug(markup, slug string) int {
	n := 0
	for _, s := range content.ProductSlugs(markup) {
		if s == slug {
			n++
		}
	}
	return n
}

// pickReplacement scans the valid set for its lexicographic minimum,
// excluding the broken slug. Taking the minimum keeps the substitution
// deterministic regardless of map iteration order.
func pickReplacement(valid map[string]bool, broken string) (string, bool) {
	best := ""
	for slug := range valid {
		if slug == broken {
			continue
		}
		if best == "" || slug < best {
			best = slug
		}
	}
	return best, best != ""
}
