// Package llm provides the OpenAI-backed implementation of the chat
// completion contract consumed by the chat service.
package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/feedbackform/feedback-backend/types"
)

// OpenAIClient calls an OpenAI-compatible chat completion API. One
// synchronous call per request, no streaming, no retries.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a client. baseURL may be empty to use the default
// OpenAI endpoint; a non-empty value points at any compatible provider.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Complete sends the prompt and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, messages []types.PromptMessage) (string, error) {
	union := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case types.ChatRoleSystem:
			union = append(union, openai.SystemMessage(m.Content))
		case types.ChatRoleAssistant:
			union = append(union, openai.AssistantMessage(m.Content))
		default:
			union = append(union, openai.UserMessage(m.Content))
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.F(openai.ChatModel(c.model)),
		Messages: openai.F(union),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
