package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultAPILayerURL is the APILayer sentiment analysis endpoint.
const DefaultAPILayerURL = "https://api.apilayer.com/sentiment/analysis"

// APILayer is a sentiment provider backed by the APILayer sentiment API.
type APILayer struct {
	client *http.Client
	url    string
	apiKey string
}

type apilayerRequest struct {
	Text string `json:"text"`
}

type apilayerResponse struct {
	Sentiment *string `json:"sentiment"`
}

// NewAPILayer creates an APILayer provider. Request deadlines come from the
// caller's context.
func NewAPILayer(cfg *SentimentConfig, client *http.Client) *APILayer {
	if client == nil {
		client = http.DefaultClient
	}
	url := cfg.BaseURL
	if url == "" {
		url = DefaultAPILayerURL
	}
	return &APILayer{
		client: client,
		url:    url,
		apiKey: cfg.APIKey,
	}
}

func (p *APILayer) Name() string {
	return "apilayer"
}

// Sentiment posts text to the API and returns the sentiment field of the response.
func (p *APILayer) Sentiment(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(apilayerRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var result apilayerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Sentiment == nil {
		return "", fmt.Errorf("response missing sentiment field")
	}

	return *result.Sentiment, nil
}
