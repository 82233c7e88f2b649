// File path: internal/api/content_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/sileaweb/content-engine/internal/catalog"
	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/generator"
	"github.com/sileaweb/content-engine/internal/llm"
)

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	var req generator.OutlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	outline, err := s.generator.Outline(r.Context(), req)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outline": outline})
}

func (s *Server) handleCreatePillar(w http.ResponseWriter, r *http.Request) {
	var req generator.PillarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	pillar, err := s.generator.CreatePillar(r.Context(), req)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	common.Logger().Info("api: pillar created", "id", pillar.ID, "slug", pillar.Slug)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      pillar.ID,
		"slug":    pillar.Slug,
		"title":   pillar.Title,
		"content": pillar.Live,
	})
}

func (s *Server) handleSupportArticles(w http.ResponseWriter, r *http.Request) {
	pillarID := chi.URLParam(r, "id")
	var req struct {
		Articles []generator.ArticleSpec `json:"articles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if len(req.Articles) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("at least one article spec required"))
		return
	}
	result, err := s.generator.CreateSupportArticles(r.Context(), pillarID, req.Articles)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// statusForError maps the domain sentinels onto HTTP statuses. Model-side
// failures surface as 502 so callers can tell provider trouble from their
// own bad input.
func statusForError(err error) int {
	var genErr *llm.GenerationError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrSlugConflict):
		return http.StatusConflict
	case errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
