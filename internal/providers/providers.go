// Package providers adapts external classification services to the
// enrichment provider interfaces.
package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JaimeStill/triage/internal/enrichment"
)

// NewSentiment returns the sentiment provider for cfg, or nil when no API key
// is configured.
func NewSentiment(cfg *SentimentConfig, client *http.Client) enrichment.SentimentProvider {
	if !cfg.Configured() {
		return nil
	}
	return NewAPILayer(cfg, client)
}

// NewCategory returns the category provider selected by cfg.Provider, or nil
// when the provider's credential is missing.
func NewCategory(ctx context.Context, cfg *CategoryConfig) (enrichment.CategoryProvider, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	var (
		provider enrichment.CategoryProvider
		err      error
	)

	switch cfg.Provider {
	case ProviderOpenAI:
		provider, err = NewOpenAI(ctx, cfg)
	case ProviderOllama:
		provider, err = NewOllama(ctx, cfg)
	case ProviderBedrock:
		provider, err = NewBedrock(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown category provider %q", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}
	return provider, nil
}
