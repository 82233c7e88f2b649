// File path: internal/llm/providers/gemini.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/sileaweb/content-engine/internal/common"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider wraps the Gemini API with credential rotation: a quota or
// rate-limit failure advances the ring, rebuilds the client with the next
// credential, and retries the same prompt exactly once. Any other failure,
// or a failed retry, propagates without further attempts.
type GeminiProvider struct {
	ring         *KeyRing
	defaultModel string

	mu        sync.Mutex
	client    *genai.Client
	clientKey string

	// invoke is swapped out by tests to avoid network calls.
	invoke func(ctx context.Context, apiKey, model, prompt string) (string, error)
}

func NewGeminiProvider(ring *KeyRing) *GeminiProvider {
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = defaultGeminiModel
	}
	common.Logger().Info("llm: gemini provider configured", "model", model, "credentials", ring.Len())
	p := &GeminiProvider{ring: ring, defaultModel: model}
	p.invoke = p.generateWithKey
	return p
}

func (g *GeminiProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", &GenerationError{Provider: g.Name(), Model: model, Err: fmt.Errorf("empty prompt")}
	}
	if strings.TrimSpace(model) == "" {
		model = g.defaultModel
	}
	logger := common.Logger()
	key, idx := g.ring.Current()
	text, err := g.invoke(ctx, key, model, prompt)
	if err == nil {
		return text, nil
	}
	if !IsQuotaError(err) {
		logger.Error("llm: gemini generation failed", "model", model, "error", err)
		return "", &GenerationError{Provider: g.Name(), Model: model, Err: err}
	}
	nextKey, nextIdx := g.ring.Advance(idx)
	logger.Warn("llm: gemini quota exhausted, rotating credential", "from", idx, "to", nextIdx)
	text, retryErr := g.invoke(ctx, nextKey, model, prompt)
	if retryErr != nil {
		logger.Error("llm: gemini retry failed after rotation", "model", model, "error", retryErr)
		return "", &GenerationError{Provider: g.Name(), Model: model, Err: retryErr}
	}
	return text, nil
}

func (g *GeminiProvider) generateWithKey(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := g.clientFor(ctx, apiKey)
	if err != nil {
		return "", fmt.Errorf("build gemini client: %w", err)
	}
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}

// clientFor returns the cached client, rebuilding it when the active
// credential changed since the last call.
func (g *GeminiProvider) clientFor(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil && g.clientKey == apiKey {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g.client = client
	g.clientKey = apiKey
	return client, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}
