// File path: internal/llm/llm.go
package llm

import (
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/llm/providers"
)

type Provider = providers.Provider

type GenerationError = providers.GenerationError

// NewProvider selects the text-generation backend from the environment:
// GEMINI_API_KEYS (comma-separated, ordered) enables Gemini with credential
// rotation, OPENAI_API_KEY enables OpenAI, and with neither set the local
// stub keeps the pipeline runnable offline.
func NewProvider() Provider {
	logger := common.Logger()
	if keys := geminiKeys(); len(keys) > 0 {
		ring, err := providers.NewKeyRing(keys)
		if err == nil {
			logger.Info("llm: gemini provider selected", "credentials", len(keys))
			return providers.NewGeminiProvider(ring)
		}
		logger.Warn("llm: invalid gemini credentials, trying next provider", "error", err)
	}
	if apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); apiKey != "" {
		opts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
			logger.Info("llm: configuring openai client with custom endpoint", "endpoint", endpoint)
			opts = append(opts, option.WithBaseURL(endpoint))
		}
		logger.Info("llm: openai provider selected")
		return providers.NewOpenAIProvider(openai.NewClient(opts...))
	}
	logger.Warn("llm: no provider credentials set; falling back to local provider")
	return providers.NewLocalProvider()
}

func geminiKeys() []string {
	raw := strings.TrimSpace(os.Getenv("GEMINI_API_KEYS"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}
