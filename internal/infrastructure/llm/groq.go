package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ResearchDigest/internal/config"
	"ResearchDigest/internal/ports"
)

// GroqClient implements ports.CompletionClient against Groq's
// OpenAI-compatible chat completions API via the official openai-go SDK.
type GroqClient struct {
	model string
	opts  []option.RequestOption
}

var _ ports.CompletionClient = (*GroqClient)(nil)

// NewGroqClient builds a client from configuration.
func NewGroqClient(cfg config.LLMConfig) (*GroqClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq api key missing; provide llm.apiKey or GROQ_API_KEY")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &GroqClient{model: cfg.Model, opts: opts}, nil
}

// Complete sends a single-user-message completion request and returns the
// raw response text. Callers treat that text as untrusted.
func (c *GroqClient) Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}

	return resp.Choices[0].Message.Content, nil
}
