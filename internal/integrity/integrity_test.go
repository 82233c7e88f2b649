// File path: internal/integrity/integrity_test.go
package integrity

import (
	"context"
	"strings"
	"testing"

	"github.com/sileaweb/content-engine/internal/content"
)

type fakeStore struct {
	pillars []content.Pillar
	slugs   []string
	updated map[string]string
}

func (f *fakeStore) Pillars(_ context.Context) ([]content.Pillar, error) {
	return f.pillars, nil
}

func (f *fakeStore) ProductSlugs(_ context.Context) ([]string, error) {
	return f.slugs, nil
}

func (f *fakeStore) UpdatePillarLive(_ context.Context, id, body string) error {
	if f.updated == nil {
		f.updated = map[string]string{}
	}
	f.updated[id] = body
	return nil
}

func TestScanReportsGhostSlugs(t *testing.T) {
	store := &fakeStore{
		pillars: []content.Pillar{
			{
				ID: "p1", Title: "Hiking Boots", Slug: "hiking-boots",
				Live: "<p>intro</p>" + content.ProductCard("trail-master") +
					"<p>more</p>" + content.ProductCard("deleted-boot"),
			},
			{
				ID: "p2", Title: "Tents", Slug: "tents",
				Live: content.ProductCard("deleted-boot") + content.ProductCard("deleted-boot"),
			},
		},
		slugs: []string{"trail-master"},
	}

	checker := New(store)
	issues, err := checker.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected one issue per occurrence, got %d: %+v", len(issues), issues)
	}
	if issues[0].PillarSlug != "hiking-boots" || issues[0].BrokenProductSlug != "deleted-boot" {
		t.Fatalf("unexpected first issue: %+v", issues[0])
	}
	if issues[1].PillarSlug != "tents" || issues[2].PillarSlug != "tents" {
		t.Fatalf("duplicate reference in one pillar must yield one issue each: %+v", issues[1:])
	}
}

func TestScanCleanCatalog(t *testing.T) {
	store := &fakeStore{
		pillars: []content.Pillar{{ID: "p1", Slug: "clean", Live: content.ProductCard("trail-master")}},
		slugs:   []string{"trail-master"},
	}
	issues, err := New(store).Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected clean scan, got %+v", issues)
	}
}

func TestRepairRewritesAndPersists(t *testing.T) {
	store := &fakeStore{
		pillars: []content.Pillar{
			{
				ID: "p1", Slug: "hiking-boots",
				Live: content.ProductCard("deleted-boot") + "<p>mid</p>" + content.ProductCard("deleted-boot"),
			},
		},
		slugs: []string{"trail-master", "alpine-pro"},
	}

	checker := New(store)
	result, err := checker.Repair(context.Background())
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if result.TotalBroken != 2 || result.TotalFixed != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	body, ok := store.updated["p1"]
	if !ok {
		t.Fatal("repaired pillar was not persisted")
	}
	if strings.Contains(body, "deleted-boot") {
		t.Fatalf("broken slug survived repair: %s", body)
	}
	// Replacement is deterministic: lowest valid slug.
	if got := content.ProductSlugs(body); len(got) != 2 || got[0] != "alpine-pro" {
		t.Fatalf("unexpected rewritten slugs: %v", got)
	}

	// A follow-up scan must come back clean.
	store.pillars[0].Live = body
	issues, err := checker.Scan(context.Background())
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("rescan found issues after repair: %+v", issues)
	}
}

func TestRepairWithoutValidProducts(t *testing.T) {
	store := &fakeStore{
		pillars: []content.Pillar{{ID: "p1", Slug: "orphan", Live: content.ProductCard("gone")}},
	}
	result, err := New(store).Repair(context.Background())
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if result.TotalBroken != 1 || result.TotalFixed != 0 {
		t.Fatalf("expected counted-but-unfixed, got %+v", result)
	}
	if len(store.updated) != 0 {
		t.Fatalf("nothing should be persisted: %+v", store.updated)
	}
}
