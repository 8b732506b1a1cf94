package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/ollama/ollama/api"

	"github.com/JaimeStill/triage/internal/enrichment"
)

// Chat is a category provider that renders the category prompt and sends it
// to an eino chat model.
type Chat struct {
	name     string
	runnable compose.Runnable[map[string]any, *schema.Message]
}

// NewChat compiles a template-to-model chain over m.
func NewChat(ctx context.Context, name string, m model.BaseChatModel) (*Chat, error) {
	template := prompt.FromMessages(
		schema.FString,
		schema.UserMessage(enrichment.CategoryTemplate),
	)

	runnable, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(template).
		AppendChatModel(m).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile category chain: %w", err)
	}

	return &Chat{name: name, runnable: runnable}, nil
}

// NewOpenAI creates a Chat provider over an OpenAI-compatible chat completion API.
func NewOpenAI(ctx context.Context, cfg *CategoryConfig) (*Chat, error) {
	maxTokens := cfg.MaxTokens
	temperature := cfg.Temperature

	m, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}

	return NewChat(ctx, ProviderOpenAI, m)
}

// NewOllama creates a Chat provider over an Ollama server.
func NewOllama(ctx context.Context, cfg *CategoryConfig) (*Chat, error) {
	m, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Options: &api.Options{
			Temperature: cfg.Temperature,
			NumPredict:  cfg.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create ollama model: %w", err)
	}

	return NewChat(ctx, ProviderOllama, m)
}

func (c *Chat) Name() string {
	return c.name
}

// Categorize returns the model's raw answer for text.
func (c *Chat) Categorize(ctx context.Context, text string) (string, error) {
	msg, err := c.runnable.Invoke(ctx, map[string]any{"text": text})
	if err != nil {
		return "", fmt.Errorf("invoke chat model: %w", err)
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", enrichment.ErrEmptyAnswer
	}

	return msg.Content, nil
}
