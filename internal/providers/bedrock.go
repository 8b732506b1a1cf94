package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/JaimeStill/triage/internal/enrichment"
)

const anthropicVersion = "bedrock-2023-05-31"

type invoker interface {
	InvokeModel(
		ctx context.Context,
		params *bedrockruntime.InvokeModelInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.InvokeModelOutput, error)
}

// Bedrock is a category provider that invokes an Anthropic model on AWS Bedrock.
type Bedrock struct {
	client      invoker
	model       string
	maxTokens   int
	temperature float32
}

type bedrockMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	Temperature      float32          `json:"temperature"`
	Messages         []bedrockMessage `json:"messages"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewBedrock creates a Bedrock provider using the AWS default credential chain.
func NewBedrock(ctx context.Context, cfg *CategoryConfig) (*Bedrock, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newBedrock(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
}

func newBedrock(client invoker, cfg *CategoryConfig) *Bedrock {
	return &Bedrock{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (b *Bedrock) Name() string {
	return ProviderBedrock
}

// Categorize returns the text of the first content block of the model's reply.
func (b *Bedrock) Categorize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(bedrockRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        b.maxTokens,
		Temperature:      b.temperature,
		Messages: []bedrockMessage{
			{Role: "user", Content: enrichment.CategoryPrompt(text)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	resp, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke model: %w", err)
	}

	var out bedrockResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(out.Content) == 0 || out.Content[0].Text == "" {
		return "", enrichment.ErrEmptyAnswer
	}

	return out.Content[0].Text, nil
}
