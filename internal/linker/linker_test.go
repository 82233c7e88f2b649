// File path: internal/linker/linker_test.go
package linker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sileaweb/content-engine/internal/catalog"
	"github.com/sileaweb/content-engine/internal/content"
)

type fakeProvider struct {
	response string
	err      error
	prompt   string
}

func (p *fakeProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	p.prompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *fakeProvider) Name() string { return "fake" }

type fakeStore struct {
	mu       sync.Mutex
	pillar   content.Pillar
	members  []content.Document
	proposed map[string]string
	failIDs  map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pillar: content.Pillar{
			ID: "pil-1", Title: "Agendas 2026", Slug: "agendas-2026",
			Topic: "organizacion", Live: "<p>Las mejores agendas para planificar tu año.</p>",
		},
		members: []content.Document{
			{Ref: content.Ref{ID: "art-1", Type: content.TypeArticle}, Title: "Como organizar tu semana", Slug: "como-organizar-tu-semana", Live: "<p>Organizar tu semana empieza por una agenda.</p>"},
			{Ref: content.Ref{ID: "prod-1", Type: content.TypeProduct}, Title: "Agenda Semanal", Slug: "agenda-semanal", Live: "<p>Agenda A5 con planificador semanal.</p>"},
		},
		proposed: make(map[string]string),
		failIDs:  make(map[string]bool),
	}
}

func (s *fakeStore) Pillar(ctx context.Context, id string) (content.Pillar, error) {
	if id != s.pillar.ID {
		return content.Pillar{}, fmt.Errorf("%w: pillar %s", catalog.ErrNotFound, id)
	}
	return s.pillar, nil
}

func (s *fakeStore) ClusterMembers(ctx context.Context, pillarID string) ([]content.Document, error) {
	return s.members, nil
}

func (s *fakeStore) SetProposed(ctx context.Context, ref content.Ref, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[ref.ID] {
		return fmt.Errorf("%w: %s", catalog.ErrNotFound, ref)
	}
	s.proposed[ref.ID] = body
	return nil
}

const validPlan = `[
	{"id": "art-1", "type": "article", "new_content": "<p>Organizar tu semana empieza por <a href=\"/topics/agendas-2026\">una agenda</a>.</p>"},
	{"id": "pil-1", "type": "pillar", "new_content": "<p>Las mejores <a href=\"/blog/como-organizar-tu-semana\">agendas</a> para planificar tu año.</p>"}
]`

func TestPlanLinksBuildsFullClusterPrompt(t *testing.T) {
	store := newFakeStore()
	provider := &fakeProvider{response: validPlan}
	l := New(provider, store)

	proposal, err := l.PlanLinks(context.Background(), "pil-1")
	if err != nil {
		t.Fatalf("plan links: %v", err)
	}
	if len(proposal.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(proposal.Entries))
	}
	for _, want := range []string{"pil-1", "art-1", "prod-1", "/topics/agendas-2026", "/products/agenda-semanal", "not a diff"} {
		if !strings.Contains(provider.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, provider.prompt)
		}
	}
}

func TestPlanLinksMalformedOutputAborts(t *testing.T) {
	store := newFakeStore()
	for _, response := range []string{
		"I could not find any good anchors, sorry!",
		`{"id": "art-1"}`,
		`[{"id": "", "type": "article", "new_content": "<p>x</p>"}]`,
		`[{"id": "art-1", "type": "banana", "new_content": "<p>x</p>"}]`,
		`[{"id": "art-1", "type": "article", "new_content": ""}]`,
		`[]`,
	} {
		provider := &fakeProvider{response: response}
		l := New(provider, store)
		if _, err := l.PlanLinks(context.Background(), "pil-1"); !errors.Is(err, ErrProposalFormat) {
			t.Fatalf("response %q: expected ErrProposalFormat, got %v", response, err)
		}
	}
}

func TestApplyProposalPartialFailure(t *testing.T) {
	store := newFakeStore()
	store.failIDs["art-1"] = true
	l := New(&fakeProvider{}, store)

	result := l.ApplyProposal(context.Background(), Proposal{
		PillarID: "pil-1",
		Entries: []Entry{
			{Ref: content.Ref{ID: "art-1", Type: content.TypeArticle}, NewContent: "<p>a</p>"},
			{Ref: content.Ref{ID: "prod-1", Type: content.TypeProduct}, NewContent: "<p>b</p>"},
		},
	})
	if result.TotalAttempted != 2 || result.Updated != 1 {
		t.Fatalf("expected 1 of 2 updates, got %+v", result)
	}
	if result.Message != "Applied 1 of 2 proposed updates" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if len(result.Errors) != 1 || result.Errors[0].ID != "art-1" {
		t.Fatalf("expected itemized error for art-1, got %v", result.Errors)
	}
	if _, ok := store.proposed["prod-1"]; !ok {
		t.Fatalf("surviving entry must still be written")
	}
}

func TestApplyProposalOverwritesPendingPlan(t *testing.T) {
	store := newFakeStore()
	l := New(&fakeProvider{}, store)
	entry := Entry{Ref: content.Ref{ID: "art-1", Type: content.TypeArticle}, NewContent: "<p>first plan</p>"}

	l.ApplyProposal(context.Background(), Proposal{PillarID: "pil-1", Entries: []Entry{entry}})
	entry.NewContent = "<p>second plan</p>"
	l.ApplyProposal(context.Background(), Proposal{PillarID: "pil-1", Entries: []Entry{entry}})

	if got := store.proposed["art-1"]; got != "<p>second plan</p>" {
		t.Fatalf("latest proposal must win, got %q", got)
	}
}

func TestCountAnchors(t *testing.T) {
	markup := `<p>See <a href="/topics/agendas-2026">the guide</a> and <a href="/blog/x">more</a>.</p>`
	if got := countAnchors(markup, "/topics/agendas-2026"); got != 1 {
		t.Fatalf("expected 1 targeted anchor, got %d", got)
	}
	if got := countAnchors(markup, ""); got != 2 {
		t.Fatalf("expected 2 anchors total, got %d", got)
	}
	if got := countAnchors("<p>no links</p>", ""); got != 0 {
		t.Fatalf("expected 0 anchors, got %d", got)
	}
}
