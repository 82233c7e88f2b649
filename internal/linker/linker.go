// File path: internal/linker/linker.go
// Package linker plans and applies the bidirectional internal-linking graph
// for a topic cluster: every member gains at most one link up to its pillar,
// and the pillar gains a handful of links down to selected members.
package linker

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/content"
	"github.com/sileaweb/content-engine/internal/llm"
	"github.com/sileaweb/content-engine/internal/metrics"
)

// Store is the slice of the catalog the linker needs.
type Store interface {
	Pillar(ctx context.Context, id string) (content.Pillar, error)
	ClusterMembers(ctx context.Context, pillarID string) ([]content.Document, error)
	SetProposed(ctx context.Context, ref content.Ref, body string) error
}

type Linker struct {
	provider llm.Provider
	store    Store
	model    string
}

func New(provider llm.Provider, store Store) *Linker {
	return &Linker{
		provider: provider,
		store:    store,
		model:    strings.TrimSpace(os.Getenv("GENERATION_MODEL")),
	}
}

// PlanLinks asks the model for a full-body update per cluster document and
// validates the returned plan. Nothing is written yet.
func (l *Linker) PlanLinks(ctx context.Context, pillarID string) (Proposal, error) {
	logger := common.Logger()
	pillar, err := l.store.Pillar(ctx, pillarID)
	if err != nil {
		return Proposal{}, err
	}
	members, err := l.store.ClusterMembers(ctx, pillarID)
	if err != nil {
		return Proposal{}, err
	}
	if len(members) == 0 {
		return Proposal{}, fmt.Errorf("pillar %s has no cluster members to link", pillarID)
	}
	prompt := linkingPrompt(pillar, members)
	raw, err := l.provider.Generate(ctx, l.model, prompt)
	if err != nil {
		return Proposal{}, err
	}
	entries, err := parseProposal(raw)
	if err != nil {
		return Proposal{}, err
	}
	pillarPath := pillar.View().PublicPath()
	for _, entry := range entries {
		if entry.Ref.Type == content.TypePillar {
			continue
		}
		if countAnchors(entry.NewContent, pillarPath) == 0 {
			logger.Warn("linker: proposed member body carries no link to pillar",
				"pillar", pillarID, "member", entry.Ref.String())
		}
	}
	logger.Info("linker: plan ready", "pillar", pillarID, "updates", len(entries))
	return Proposal{PillarID: pillarID, Entries: entries}, nil
}

// ItemError records one failed write inside a batch.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Result reports an applied proposal; partial success is always visible.
type Result struct {
	Message        string      `json:"message"`
	TotalAttempted int         `json:"total_attempted"`
	Updated        int         `json:"successful_updates"`
	Errors         []ItemError `json:"errors"`
}

// ApplyProposal writes each entry as proposed content, flipping the target
// to pending_review. Writes are issued concurrently and independently: one
// failure never aborts the batch, and re-applying simply overwrites any
// pending proposal.
func (l *Linker) ApplyProposal(ctx context.Context, proposal Proposal) Result {
	result := Result{TotalAttempted: len(proposal.Entries)}
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	for _, entry := range proposal.Entries {
		entry := entry
		group.Go(func() error {
			err := l.store.SetProposed(groupCtx, entry.Ref, entry.NewContent)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				metrics.ProposalsAppliedTotal.WithLabelValues("failure").Inc()
				result.Errors = append(result.Errors, ItemError{ID: entry.Ref.ID, Error: err.Error()})
				return nil
			}
			metrics.ProposalsAppliedTotal.WithLabelValues("success").Inc()
			result.Updated++
			return nil
		})
	}
	_ = group.Wait()
	sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].ID < result.Errors[j].ID })
	result.Message = fmt.Sprintf("Applied %d of %d proposed updates", result.Updated, result.TotalAttempted)
	common.Logger().Info("linker: proposal applied",
		"pillar", proposal.PillarID, "attempted", result.TotalAttempted,
		"updated", result.Updated, "failed", len(result.Errors))
	return result
}

func linkingPrompt(pillar content.Pillar, members []content.Document) string {
	b := &strings.Builder{}
	b.WriteString("You are optimizing internal linking for a topic cluster on an e-commerce site.\n\n")
	b.WriteString("PILLAR PAGE\n")
	fmt.Fprintf(b, "id: %s\ntype: pillar\ntitle: %s\nurl: %s\ncontent:\n%s\n",
		pillar.ID, pillar.Title, pillar.View().PublicPath(), pillar.Live)
	b.WriteString("\nCLUSTER MEMBERS\n")
	for _, m := range members {
		fmt.Fprintf(b, "---\nid: %s\ntype: %s\ntitle: %s\nurl: %s\ncontent:\n%s\n",
			m.ID, m.Type, m.Title, m.PublicPath(), m.Live)
	}
	b.WriteString(`
TASK
1. For every cluster member, find at most one natural anchor phrase that already exists in that member's text and wrap it in <a href="PILLAR_URL">...</a> pointing at the pillar page.
2. Within the pillar's own text, find a handful of natural anchor phrases and wrap each in a link pointing at one cluster member's url. Not every member needs a link from the pillar.
3. Link insertion is additive: do not rewrite, rephrase or delete any surrounding text.

OUTPUT
Respond with a single strict JSON array and nothing else. One object per document you changed:
[{"id": "...", "type": "pillar|article|product", "new_content": "<entire updated body>"}]
new_content must be the complete updated body of that document, not a diff.`)
	return b.String()
}
