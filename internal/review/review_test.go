// File path: internal/review/review_test.go
package review

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sileaweb/content-engine/internal/catalog"
	"github.com/sileaweb/content-engine/internal/content"
)

type fakeStore struct {
	mu      sync.Mutex
	pillars map[string]content.Pillar
	docs    map[string]content.Document
	members map[string][]content.Document
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pillars: map[string]content.Pillar{},
		docs:    map[string]content.Document{},
		members: map[string][]content.Document{},
	}
}

func (f *fakeStore) Pillar(_ context.Context, id string) (content.Pillar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pillar, ok := f.pillars[id]
	if !ok {
		return content.Pillar{}, fmt.Errorf("pillar %q: %w", id, catalog.ErrNotFound)
	}
	return pillar, nil
}

func (f *fakeStore) ClusterMembers(_ context.Context, pillarID string) ([]content.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[pillarID], nil
}

func (f *fakeStore) Promote(_ context.Context, ref content.Ref) (content.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[ref.String()]
	if !ok {
		return content.Document{}, fmt.Errorf("%s: %w", ref, catalog.ErrNotFound)
	}
	if doc.Proposed == "" {
		return content.Document{}, fmt.Errorf("%s: %w", ref, catalog.ErrNoProposal)
	}
	doc.Live = doc.Proposed
	doc.Proposed = ""
	doc.Status = content.StatusPublished
	f.docs[ref.String()] = doc
	return doc, nil
}

func (f *fakeStore) ClearProposed(_ context.Context, ref content.Ref) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[ref.String()]
	if !ok {
		return fmt.Errorf("%s: %w", ref, catalog.ErrNotFound)
	}
	if doc.Proposed == "" {
		return fmt.Errorf("%s: %w", ref, catalog.ErrNoProposal)
	}
	doc.Proposed = ""
	doc.Status = content.StatusPublished
	f.docs[ref.String()] = doc
	return nil
}

type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
	fail  map[string]bool
}

func (r *recordingInvalidator) Invalidate(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[path] {
		return fmt.Errorf("revalidate %s: upstream returned 502", path)
	}
	r.paths = append(r.paths, path)
	return nil
}

func TestQueueListsOnlyPendingDocuments(t *testing.T) {
	store := newFakeStore()
	store.pillars["p1"] = content.Pillar{
		ID: "p1", Title: "Hiking Boots", Slug: "hiking-boots",
		Status: content.StatusPendingReview, Live: "<p>old</p>", Proposed: "<p>new</p>",
	}
	store.members["p1"] = []content.Document{
		{
			Ref: content.Ref{ID: "a1", Type: content.TypeArticle}, Title: "Care Guide",
			Status: content.StatusPendingReview, Live: "<p>a-old</p>", Proposed: "<p>a-new</p>",
		},
		{
			Ref: content.Ref{ID: "a2", Type: content.TypeArticle}, Title: "Sizing",
			Status: content.StatusPublished, Live: "<p>fine</p>",
		},
	}

	svc := New(store, nil)
	items, err := svc.Queue(context.Background(), "p1")
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 pending items, got %d", len(items))
	}
	if items[0].ID != "p1" || items[0].Type != content.TypePillar {
		t.Fatalf("expected pillar first, got %+v", items[0])
	}
	if items[0].OriginalContent != "<p>old</p>" || items[0].ProposedContent != "<p>new</p>" {
		t.Fatalf("pillar item lost content: %+v", items[0])
	}
	if items[1].ID != "a1" {
		t.Fatalf("expected pending article a1, got %+v", items[1])
	}
}

func TestQueueUnknownPillar(t *testing.T) {
	svc := New(newFakeStore(), nil)
	if _, err := svc.Queue(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown pillar")
	}
}

func TestApprovePromotesAndRevalidates(t *testing.T) {
	store := newFakeStore()
	ref := content.Ref{ID: "a1", Type: content.TypeArticle}
	store.docs[ref.String()] = content.Document{
		Ref: ref, Title: "Care Guide", Slug: "care-guide",
		Status: content.StatusPendingReview, Live: "<p>old</p>", Proposed: "<p>new</p>",
	}
	inv := &recordingInvalidator{}

	svc := New(store, inv)
	result := svc.Approve(context.Background(), []content.Ref{ref})
	if result.Approved != 1 || result.Revalidated != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.ApprovalErrors) != 0 || len(result.RevalidationErrors) != 0 {
		t.Fatalf("unexpected errors: %+v", result)
	}
	promoted := store.docs[ref.String()]
	if promoted.Live != "<p>new</p>" || promoted.Proposed != "" || promoted.Status != content.StatusPublished {
		t.Fatalf("document not promoted: %+v", promoted)
	}
	if len(inv.paths) != 1 || inv.paths[0] != "/blog/care-guide" {
		t.Fatalf("expected one purge of /blog/care-guide, got %v", inv.paths)
	}
}

func TestApproveMissingDocumentIsPerItemError(t *testing.T) {
	store := newFakeStore()
	exists := content.Ref{ID: "a1", Type: content.TypeArticle}
	store.docs[exists.String()] = content.Document{
		Ref: exists, Slug: "exists",
		Status: content.StatusPendingReview, Proposed: "<p>new</p>",
	}
	missing := content.Ref{ID: "ghost", Type: content.TypeArticle}

	svc := New(store, &recordingInvalidator{})
	result := svc.Approve(context.Background(), []content.Ref{exists, missing})
	if result.TotalAttempted != 2 {
		t.Fatalf("expected 2 attempted, got %d", result.TotalAttempted)
	}
	if result.Approved != 1 {
		t.Fatalf("expected 1 approval, got %d", result.Approved)
	}
	if result.Message != "Approved 1 of 2 items" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if len(result.ApprovalErrors) != 1 || result.ApprovalErrors[0].ID != "ghost" {
		t.Fatalf("expected explicit error for ghost, got %+v", result.ApprovalErrors)
	}
}

func TestApproveWithoutProposalSkipsSilently(t *testing.T) {
	store := newFakeStore()
	ref := content.Ref{ID: "a1", Type: content.TypeArticle}
	store.docs[ref.String()] = content.Document{
		Ref: ref, Slug: "published-only", Status: content.StatusPublished, Live: "<p>live</p>",
	}

	svc := New(store, &recordingInvalidator{})
	result := svc.Approve(context.Background(), []content.Ref{ref})
	if result.Approved != 0 || result.Skipped != 1 {
		t.Fatalf("expected silent skip, got %+v", result)
	}
	if len(result.ApprovalErrors) != 0 {
		t.Fatalf("no-proposal skip must not surface an error: %+v", result.ApprovalErrors)
	}
}

func TestApproveRevalidationFailureDoesNotRollBack(t *testing.T) {
	store := newFakeStore()
	ref := content.Ref{ID: "p1", Type: content.TypePillar}
	store.docs[ref.String()] = content.Document{
		Ref: ref, Slug: "hiking-boots",
		Status: content.StatusPendingReview, Live: "<p>old</p>", Proposed: "<p>new</p>",
	}
	inv := &recordingInvalidator{fail: map[string]bool{"/topics/hiking-boots": true}}

	svc := New(store, inv)
	result := svc.Approve(context.Background(), []content.Ref{ref})
	if result.Approved != 1 {
		t.Fatalf("approval must stand despite purge failure: %+v", result)
	}
	if result.Revalidated != 0 || len(result.RevalidationErrors) != 1 {
		t.Fatalf("expected tracked revalidation failure: %+v", result)
	}
	if !strings.Contains(result.RevalidationErrors[0].Error, "502") {
		t.Fatalf("revalidation error missing cause: %+v", result.RevalidationErrors[0])
	}
	if doc := store.docs[ref.String()]; doc.Live != "<p>new</p>" {
		t.Fatalf("promotion rolled back: %+v", doc)
	}
}

func TestRejectClearsProposalKeepsLive(t *testing.T) {
	store := newFakeStore()
	ref := content.Ref{ID: "a1", Type: content.TypeArticle}
	store.docs[ref.String()] = content.Document{
		Ref: ref, Slug: "care-guide",
		Status: content.StatusPendingReview, Live: "<p>old</p>", Proposed: "<p>bad draft</p>",
	}
	unknown := content.Ref{ID: "ghost", Type: content.TypeProduct}
	published := content.Ref{ID: "a2", Type: content.TypeArticle}
	store.docs[published.String()] = content.Document{
		Ref: published, Status: content.StatusPublished, Live: "<p>fine</p>",
	}

	svc := New(store, nil)
	result := svc.Reject(context.Background(), []content.Ref{ref, unknown, published})
	if result.Rejected != 1 || result.Skipped != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Errors[0].ID != "ghost" {
		t.Fatalf("expected error for ghost, got %+v", result.Errors)
	}
	doc := store.docs[ref.String()]
	if doc.Live != "<p>old</p>" || doc.Proposed != "" || doc.Status != content.StatusPublished {
		t.Fatalf("reject did not restore published state: %+v", doc)
	}
}
