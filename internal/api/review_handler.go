// File path: internal/api/review_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sileaweb/content-engine/internal/content"
)

type reviewItemsRequest struct {
	Items []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"items"`
}

func (r reviewItemsRequest) refs() ([]content.Ref, error) {
	if len(r.Items) == 0 {
		return nil, fmt.Errorf("at least one item required")
	}
	refs := make([]content.Ref, 0, len(r.Items))
	for _, item := range r.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("item id required")
		}
		docType, err := content.ParseDocType(item.Type)
		if err != nil {
			return nil, err
		}
		refs = append(refs, content.Ref{ID: item.ID, Type: docType})
	}
	return refs, nil
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req reviewItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	refs, err := req.refs()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result := s.review.Approve(r.Context(), refs)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	var req reviewItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	refs, err := req.refs()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result := s.review.Reject(r.Context(), refs)
	writeJSON(w, http.StatusOK, result)
}
