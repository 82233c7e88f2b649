// File path: internal/api/cluster_handler.go
package api

import (
	"errors"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/linker"
)

// handleClusterLinks runs the full linking pass for one cluster: plan the
// cross-links with the model, then stage every returned body as a pending
// proposal. Planning is all-or-nothing; applying is per-item.
func (s *Server) handleClusterLinks(w http.ResponseWriter, r *http.Request) {
	pillarID := chi.URLParam(r, "id")
	proposal, err := s.linker.PlanLinks(r.Context(), pillarID)
	if err != nil {
		status := statusForError(err)
		if errors.Is(err, linker.ErrProposalFormat) {
			status = http.StatusBadGateway
		}
		writeError(w, status, fmt.Errorf("plan cluster links: %w", err))
		return
	}
	result := s.linker.ApplyProposal(r.Context(), proposal)
	common.Logger().Info("api: cluster links staged",
		"pillar", pillarID, "attempted", result.TotalAttempted,
		"updated", result.Updated, "errors", len(result.Errors))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	pillarID := chi.URLParam(r, "id")
	items, err := s.review.Queue(r.Context(), pillarID)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}
