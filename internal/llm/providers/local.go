// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"fmt"
	"strings"
)

// LocalProvider is the offline fallback used when no API credential is
// configured. It echoes a deterministic marker so downstream code paths stay
// exercisable in development.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return "", fmt.Errorf("empty prompt")
	}
	if len(trimmed) > 120 {
		trimmed = trimmed[:120]
	}
	return fmt.Sprintf("<p>[local-stub model=%s] %s</p>", model, trimmed), nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
