// File path: internal/review/review.go
// Package review owns the content lifecycle between pending_review and
// published. Approval is the only transition that makes proposed content
// live; reject discards a proposal without touching the live body.
package review

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sileaweb/content-engine/internal/cache"
	"github.com/sileaweb/content-engine/internal/catalog"
	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/content"
	"github.com/sileaweb/content-engine/internal/metrics"
)

// Store is the slice of the catalog the review workflow needs.
type Store interface {
	Pillar(ctx context.Context, id string) (content.Pillar, error)
	ClusterMembers(ctx context.Context, pillarID string) ([]content.Document, error)
	Promote(ctx context.Context, ref content.Ref) (content.Document, error)
	ClearProposed(ctx context.Context, ref content.Ref) error
}

type Service struct {
	store       Store
	invalidator cache.Invalidator
}

func New(store Store, invalidator cache.Invalidator) *Service {
	if invalidator == nil {
		invalidator = cache.NoopInvalidator{}
	}
	return &Service{store: store, invalidator: invalidator}
}

// Item is one pending document presented to the reviewer, old and new side
// by side so the change can be diffed.
type Item struct {
	ID              string          `json:"id"`
	Type            content.DocType `json:"type"`
	Title           string          `json:"title"`
	OriginalContent string          `json:"original_content"`
	ProposedContent string          `json:"proposed_content"`
}

// Queue aggregates the pending documents of a cluster: the pillar itself,
// then every pending article and product.
func (s *Service) Queue(ctx context.Context, pillarID string) ([]Item, error) {
	pillar, err := s.store.Pillar(ctx, pillarID)
	if err != nil {
		return nil, err
	}
	items := []Item{}
	if doc := pillar.View(); doc.Pending() {
		items = append(items, itemFromDocument(doc))
	}
	members, err := s.store.ClusterMembers(ctx, pillarID)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		if member.Pending() {
			items = append(items, itemFromDocument(member))
		}
	}
	return items, nil
}

func itemFromDocument(doc content.Document) Item {
	return Item{
		ID:              doc.ID,
		Type:            doc.Type,
		Title:           doc.Title,
		OriginalContent: doc.Live,
		ProposedContent: doc.Proposed,
	}
}

// ItemError records one failed document inside a batch.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Result reports an approval batch. Approval and revalidation are tracked
// as independent counters: a failed cache purge never rolls back a
// promoted document.
type Result struct {
	Message            string      `json:"message"`
	TotalAttempted     int         `json:"total_attempted"`
	Approved           int         `json:"successful_approvals"`
	Revalidated        int         `json:"successful_revalidations"`
	Skipped            int         `json:"skipped"`
	ApprovalErrors     []ItemError `json:"approval_errors"`
	RevalidationErrors []ItemError `json:"revalidation_errors"`
}

// Approve promotes each referenced document independently: proposed content
// becomes live, the proposal is cleared, the document returns to published.
// A reference without pending content is skipped silently; a reference that
// does not resolve is an explicit per-item error. No document's failure
// aborts the batch.
func (s *Service) Approve(ctx context.Context, refs []content.Ref) Result {
	logger := common.Logger()
	result := Result{TotalAttempted: len(refs)}
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	for _, ref := range refs {
		ref := ref
		group.Go(func() error {
			doc, err := s.store.Promote(groupCtx, ref)
			mu.Lock()
			if err != nil {
				if errors.Is(err, catalog.ErrNoProposal) {
					result.Skipped++
					mu.Unlock()
					return nil
				}
				metrics.ApprovalsTotal.WithLabelValues("failure").Inc()
				result.ApprovalErrors = append(result.ApprovalErrors, ItemError{ID: ref.ID, Error: err.Error()})
				mu.Unlock()
				return nil
			}
			metrics.ApprovalsTotal.WithLabelValues("success").Inc()
			result.Approved++
			mu.Unlock()

			// Best effort: the approval stands even when the purge fails.
			invErr := s.invalidator.Invalidate(groupCtx, doc.PublicPath())
			mu.Lock()
			defer mu.Unlock()
			if invErr != nil {
				metrics.RevalidationsTotal.WithLabelValues("failure").Inc()
				logger.Warn("review: cache invalidation failed", "path", doc.PublicPath(), "error", invErr)
				result.RevalidationErrors = append(result.RevalidationErrors, ItemError{ID: ref.ID, Error: invErr.Error()})
				return nil
			}
			metrics.RevalidationsTotal.WithLabelValues("success").Inc()
			result.Revalidated++
			return nil
		})
	}
	_ = group.Wait()
	sortItemErrors(result.ApprovalErrors)
	sortItemErrors(result.RevalidationErrors)
	result.Message = fmt.Sprintf("Approved %d of %d items", result.Approved, result.TotalAttempted)
	logger.Info("review: approval batch processed",
		"attempted", result.TotalAttempted, "approved", result.Approved,
		"revalidated", result.Revalidated, "skipped", result.Skipped,
		"errors", len(result.ApprovalErrors))
	return result
}

// RejectResult reports a reject batch.
type RejectResult struct {
	TotalAttempted int         `json:"total_attempted"`
	Rejected       int         `json:"successful_rejections"`
	Skipped        int         `json:"skipped"`
	Errors         []ItemError `json:"errors"`
}

// Reject discards pending proposals, restoring published state with the
// live body untouched. Same per-item isolation as Approve.
func (s *Service) Reject(ctx context.Context, refs []content.Ref) RejectResult {
	result := RejectResult{TotalAttempted: len(refs)}
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	for _, ref := range refs {
		ref := ref
		group.Go(func() error {
			err := s.store.ClearProposed(groupCtx, ref)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Rejected++
			case errors.Is(err, catalog.ErrNoProposal):
				result.Skipped++
			default:
				result.Errors = append(result.Errors, ItemError{ID: ref.ID, Error: err.Error()})
			}
			return nil
		})
	}
	_ = group.Wait()
	sortItemErrors(result.Errors)
	return result
}

func sortItemErrors(errs []ItemError) {
	sort.Slice(errs, func(i, j int) bool { return errs[i].ID < errs[j].ID })
}
