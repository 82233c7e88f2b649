// File path: internal/cache/revalidate.go
// Package cache notifies the storefront's page cache that a public path
// changed. Invalidation is best effort: approval of content never depends
// on it succeeding.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sileaweb/content-engine/internal/common"
)

// Invalidator purges the rendered page for a public path.
type Invalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// HTTPInvalidator POSTs {"path": ...} to the storefront's revalidation
// endpoint, authenticated with a shared secret header.
type HTTPInvalidator struct {
	endpoint string
	secret   string
	client   *http.Client
}

// New returns the HTTP invalidator for the given endpoint, or a no-op when
// the endpoint is empty.
func New(endpoint, secret string) Invalidator {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		common.Logger().Warn("cache: no revalidation endpoint; revalidation disabled")
		return NoopInvalidator{}
	}
	return &HTTPInvalidator{
		endpoint: endpoint,
		secret:   strings.TrimSpace(secret),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFromEnv builds the invalidator from REVALIDATE_URL and
// REVALIDATE_SECRET.
func NewFromEnv() Invalidator {
	return New(os.Getenv("REVALIDATE_URL"), os.Getenv("REVALIDATE_SECRET"))
}

func (h *HTTPInvalidator) Invalidate(ctx context.Context, path string) error {
	payload, err := json.Marshal(map[string]string{"path": path})
	if err != nil {
		return fmt.Errorf("encode revalidation payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build revalidation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.secret != "" {
		req.Header.Set("X-Revalidate-Secret", h.secret)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("revalidate %s: unexpected status %d", path, resp.StatusCode)
	}
	common.Logger().Debug("cache: path revalidated", "path", path)
	return nil
}

// NoopInvalidator is used when no revalidation endpoint is configured.
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(ctx context.Context, path string) error {
	return nil
}
