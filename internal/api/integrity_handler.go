// File path: internal/api/integrity_handler.go
package api

import (
	"net/http"

	"github.com/sileaweb/content-engine/internal/common"
)

func (s *Server) handleContentHealth(w http.ResponseWriter, r *http.Request) {
	issues, err := s.integrity.Scan(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	status := "healthy"
	if len(issues) > 0 {
		status = "issues_found"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       status,
		"total_broken": len(issues),
		"issues":       issues,
	})
}

func (s *Server) handleContentRepair(w http.ResponseWriter, r *http.Request) {
	result, err := s.integrity.Repair(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: repair pass finished",
		"broken", result.TotalBroken, "fixed", result.TotalFixed)
	writeJSON(w, http.StatusOK, result)
}
