// File path: internal/llm/providers/provider.go
package providers

import (
	"context"
	"fmt"
)

// Provider is the gateway contract: a model name plus a prompt in, raw text
// out. Implementations wrap one upstream text-generation service.
type Provider interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
	Name() string
}

// GenerationError marks a provider failure with no further fallback
// available. The upstream error stays reachable through Unwrap.
type GenerationError struct {
	Provider string
	Model    string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("llm: %s generation failed (model %s): %v", e.Provider, e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
