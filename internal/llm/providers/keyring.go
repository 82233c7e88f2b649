// File path: internal/llm/providers/keyring.go
package providers

import (
	"errors"
	"strings"
	"sync"
)

// KeyRing holds an ordered list of provider credentials and the index of the
// one currently in use. Rotation is sticky: once a quota failure advances
// the index, later calls start from the new position. The index is guarded
// because concurrent batch calls can race a rotation.
type KeyRing struct {
	mu    sync.Mutex
	keys  []string
	index int
}

// NewKeyRing builds a ring from the non-empty credentials in keys.
func NewKeyRing(keys []string) (*KeyRing, error) {
	cleaned := make([]string, 0, len(keys))
	for _, key := range keys {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil, errors.New("at least one credential required")
	}
	return &KeyRing{keys: cleaned}, nil
}

// Len returns the number of credentials in the ring.
func (r *KeyRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

// Current returns the active credential and its position.
func (r *KeyRing) Current() (string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[r.index], r.index
}

// Advance rotates to the next credential, but only when the index still
// equals from; if another caller already rotated, the existing position is
// kept. Returns the credential now active.
func (r *KeyRing) Advance(from int) (string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index == from {
		r.index = (r.index + 1) % len(r.keys)
	}
	return r.keys[r.index], r.index
}

var quotaSignals = []string{"quota", "limit", "exceeded", "exhausted", "429"}

// IsQuotaError reports whether the error text carries a quota or rate-limit
// signal from the upstream provider.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, signal := range quotaSignals {
		if strings.Contains(msg, signal) {
			return true
		}
	}
	return false
}
