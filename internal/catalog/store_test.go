// File path: internal/catalog/store_test.go
package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sileaweb/content-engine/internal/content"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "catalog.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedPillar(t *testing.T, store *Store, id, slug string) content.Pillar {
	t.Helper()
	p := content.Pillar{
		ID:    id,
		Title: "Agendas 2026",
		Slug:  slug,
		Topic: "organizacion personal",
		Live:  "<h2>Agendas</h2><p>intro</p>",
	}
	if err := store.CreatePillar(context.Background(), p); err != nil {
		t.Fatalf("create pillar: %v", err)
	}
	return p
}

func TestCreatePillarSlugConflict(t *testing.T) {
	store := newTestStore(t)
	seedPillar(t, store, "pil-1", "agendas-2026")
	err := store.CreatePillar(context.Background(), content.Pillar{ID: "pil-2", Title: "Agendas 2026", Slug: "agendas-2026"})
	if !errors.Is(err, ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}
	// Retrying with a suffixed slug must succeed.
	if err := store.CreatePillar(context.Background(), content.Pillar{ID: "pil-2", Title: "Agendas 2026", Slug: content.SlugWithSuffix("agendas-2026")}); err != nil {
		t.Fatalf("create with suffixed slug: %v", err)
	}
}

func TestProposalStatusInvariant(t *testing.T) {
	store := newTestStore(t)
	seedPillar(t, store, "pil-1", "agendas-2026")
	ctx := context.Background()
	ref := content.Ref{ID: "pil-1", Type: content.TypePillar}

	doc, err := store.Document(ctx, ref)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Status != content.StatusPublished || doc.Proposed != "" {
		t.Fatalf("fresh document must be published with no proposal, got %+v", doc)
	}

	if err := store.SetProposed(ctx, ref, "<p>new body</p>"); err != nil {
		t.Fatalf("set proposed: %v", err)
	}
	doc, err = store.Document(ctx, ref)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Status != content.StatusPendingReview || doc.Proposed != "<p>new body</p>" {
		t.Fatalf("pending_review must pair with proposed content, got %+v", doc)
	}

	// Empty proposed bodies would break the pairing and are rejected.
	if err := store.SetProposed(ctx, ref, "  "); err == nil {
		t.Fatalf("expected empty proposal to be rejected")
	}
}

func TestPromoteRoundTrip(t *testing.T) {
	store := newTestStore(t)
	p := seedPillar(t, store, "pil-1", "agendas-2026")
	ctx := context.Background()
	ref := content.Ref{ID: p.ID, Type: content.TypePillar}

	proposed := "<h2>Agendas</h2><p>linked body</p>"
	if err := store.SetProposed(ctx, ref, proposed); err != nil {
		t.Fatalf("set proposed: %v", err)
	}
	doc, err := store.Promote(ctx, ref)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if doc.Live != proposed {
		t.Fatalf("live content must equal the pre-approval proposal, got %q", doc.Live)
	}
	if doc.Proposed != "" || doc.Status != content.StatusPublished {
		t.Fatalf("promotion must clear the proposal and publish, got %+v", doc)
	}
}

func TestPromoteWithoutProposal(t *testing.T) {
	store := newTestStore(t)
	seedPillar(t, store, "pil-1", "agendas-2026")
	ctx := context.Background()

	_, err := store.Promote(ctx, content.Ref{ID: "pil-1", Type: content.TypePillar})
	if !errors.Is(err, ErrNoProposal) {
		t.Fatalf("expected ErrNoProposal, got %v", err)
	}
	_, err = store.Promote(ctx, content.Ref{ID: "ghost", Type: content.TypePillar})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearProposed(t *testing.T) {
	store := newTestStore(t)
	p := seedPillar(t, store, "pil-1", "agendas-2026")
	ctx := context.Background()
	ref := content.Ref{ID: p.ID, Type: content.TypePillar}

	if err := store.SetProposed(ctx, ref, "<p>rejected body</p>"); err != nil {
		t.Fatalf("set proposed: %v", err)
	}
	if err := store.ClearProposed(ctx, ref); err != nil {
		t.Fatalf("clear proposed: %v", err)
	}
	doc, err := store.Document(ctx, ref)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Status != content.StatusPublished || doc.Proposed != "" {
		t.Fatalf("reject must restore published state, got %+v", doc)
	}
	if doc.Live != p.Live {
		t.Fatalf("reject must not touch live content")
	}
	if err := store.ClearProposed(ctx, ref); !errors.Is(err, ErrNoProposal) {
		t.Fatalf("expected ErrNoProposal on second clear, got %v", err)
	}
}

func TestProductContentStatusIndependentOfAvailability(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	product := content.Product{
		ID:        "prod-1",
		Name:      "Agenda Semanal",
		Slug:      "agenda-semanal",
		Price:     1590,
		Available: false,
		Live:      "<p>desc</p>",
	}
	if err := store.CreateProduct(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	ref := content.Ref{ID: "prod-1", Type: content.TypeProduct}
	if err := store.SetProposed(ctx, ref, "<p>better desc</p>"); err != nil {
		t.Fatalf("set proposed: %v", err)
	}
	got, err := store.Product(ctx, "prod-1")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if got.ContentStatus != content.StatusPendingReview {
		t.Fatalf("expected pending content status, got %s", got.ContentStatus)
	}
	if got.Available {
		t.Fatalf("content review must not alter availability")
	}
}

func TestClusterMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedPillar(t, store, "pil-1", "agendas-2026")
	if err := store.CreateArticle(ctx, content.Article{ID: "art-1", Title: "Como organizar tu semana", Slug: "como-organizar-tu-semana", Live: "<p>a</p>"}); err != nil {
		t.Fatalf("create article: %v", err)
	}
	if err := store.CreateProduct(ctx, content.Product{ID: "prod-1", Name: "Agenda Semanal", Slug: "agenda-semanal", Available: true, Live: "<p>p</p>"}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := store.AttachArticle(ctx, "pil-1", "art-1"); err != nil {
		t.Fatalf("attach article: %v", err)
	}
	if err := store.AttachProduct(ctx, "pil-1", "prod-1"); err != nil {
		t.Fatalf("attach product: %v", err)
	}

	members, err := store.ClusterMembers(ctx, "pil-1")
	if err != nil {
		t.Fatalf("cluster members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	types := map[content.DocType]bool{}
	for _, m := range members {
		types[m.Type] = true
	}
	if !types[content.TypeArticle] || !types[content.TypeProduct] {
		t.Fatalf("expected one article and one product, got %v", members)
	}

	pillar, err := store.Pillar(ctx, "pil-1")
	if err != nil {
		t.Fatalf("pillar: %v", err)
	}
	if len(pillar.ArticleIDs) != 1 || len(pillar.ProductIDs) != 1 {
		t.Fatalf("expected membership ids on pillar, got %+v", pillar)
	}
}
