// File path: internal/llm/providers/openai_client.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v2"

	"github.com/sileaweb/content-engine/internal/common"
)

type OpenAIProvider struct {
	client       openai.Client
	defaultModel string
}

func NewOpenAIProvider(client openai.Client) *OpenAIProvider {
	model := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL"))
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	common.Logger().Info("llm: openai provider configured", "model", model)
	return &OpenAIProvider{client: client, defaultModel: model}
}

func (o *OpenAIProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	if strings.TrimSpace(model) == "" {
		model = o.defaultModel
	}
	logger := common.Logger()
	logger.Debug("llm: sending chat completion request", "model", model)
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		logger.Error("llm: chat completion failed", "model", model, "error", err)
		return "", &GenerationError{Provider: o.Name(), Model: model, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Provider: o.Name(), Model: model, Err: fmt.Errorf("no choices returned")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}
