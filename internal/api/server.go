// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sileaweb/content-engine/internal/cache"
	"github.com/sileaweb/content-engine/internal/catalog"
	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/generator"
	"github.com/sileaweb/content-engine/internal/integrity"
	"github.com/sileaweb/content-engine/internal/linker"
	"github.com/sileaweb/content-engine/internal/llm"
	"github.com/sileaweb/content-engine/internal/review"
)

type Server struct {
	router     chi.Router
	catalog    *catalog.Store
	generator  *generator.Generator
	linker     *linker.Linker
	review     *review.Service
	integrity  *integrity.Checker
	provider   llm.Provider
	adminToken string
}

// Config tunes server behavior beyond the wired dependencies.
type Config struct {
	AdminToken string
}

// DefaultConfig reads the admin token from the environment.
func DefaultConfig() Config {
	return Config{AdminToken: strings.TrimSpace(os.Getenv("ADMIN_TOKEN"))}
}

func NewServer(store *catalog.Store, provider llm.Provider, invalidator cache.Invalidator, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if provider == nil {
		provider = llm.NewProvider()
	}
	configuration := DefaultConfig()
	if cfg != nil && strings.TrimSpace(cfg.AdminToken) != "" {
		configuration.AdminToken = strings.TrimSpace(cfg.AdminToken)
	}
	logger.Info("api: building server",
		"provider", provider.Name(),
		"admin_gate", configuration.AdminToken != "")
	srv := &Server{
		router:     chi.NewRouter(),
		catalog:    store,
		generator:  generator.New(provider, store),
		linker:     linker.New(provider, store),
		review:     review.New(store, invalidator),
		integrity:  integrity.New(store),
		provider:   provider,
		adminToken: configuration.AdminToken,
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.router.Route("/v1", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Post("/content/outline", s.handleOutline)
		r.Post("/content/pillars", s.handleCreatePillar)
		r.Post("/content/pillars/{id}/articles", s.handleSupportArticles)
		r.Post("/clusters/{id}/links", s.handleClusterLinks)
		r.Get("/clusters/{id}/reviews", s.handleReviewQueue)
		r.Post("/reviews/approve", s.handleApprove)
		r.Post("/reviews/reject", s.handleReject)
		r.Get("/content/health", s.handleContentHealth)
		r.Post("/content/repair", s.handleContentRepair)
		r.Get("/logs", s.handleLogs)
	})
}

// requireAdmin gates the management API behind a static bearer token. With
// no token configured the gate is open, which keeps local development and
// tests friction-free.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) != s.adminToken {
			writeError(w, http.StatusUnauthorized, fmt.Errorf("missing or invalid bearer token"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
