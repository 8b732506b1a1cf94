package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/triage/internal/enrichment"
	"github.com/JaimeStill/triage/internal/providers"
)

// Conventional credential variables, used when no key is configured otherwise.
const (
	EnvAPILayerAPIKey = "APILAYER_API_KEY"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
)

var sentimentEnv = &providers.SentimentEnv{
	APIKey:  "TRIAGE_SENTIMENT_API_KEY",
	BaseURL: "TRIAGE_SENTIMENT_BASE_URL",
	Timeout: "TRIAGE_SENTIMENT_TIMEOUT",
}

var categoryEnv = &providers.CategoryEnv{
	Provider:    "TRIAGE_CATEGORY_PROVIDER",
	APIKey:      "TRIAGE_CATEGORY_API_KEY",
	BaseURL:     "TRIAGE_CATEGORY_BASE_URL",
	Model:       "TRIAGE_CATEGORY_MODEL",
	Region:      "TRIAGE_CATEGORY_REGION",
	MaxTokens:   "TRIAGE_CATEGORY_MAX_TOKENS",
	Temperature: "TRIAGE_CATEGORY_TEMPERATURE",
	Timeout:     "TRIAGE_CATEGORY_TIMEOUT",
}

// EnrichmentConfig holds the sentiment and category provider settings and the
// keyword lists of the category fallback.
type EnrichmentConfig struct {
	Sentiment providers.SentimentConfig `toml:"sentiment"`
	Category  providers.CategoryConfig  `toml:"category"`
	Keywords  enrichment.Keywords       `toml:"keywords"`
}

// Finalize resolves credentials and finalizes both provider configs.
func (c *EnrichmentConfig) Finalize() error {
	if c.Sentiment.APIKey == "" {
		c.Sentiment.APIKey = os.Getenv(EnvAPILayerAPIKey)
	}
	if c.Category.APIKey == "" {
		c.Category.APIKey = os.Getenv(EnvOpenAIAPIKey)
	}

	if err := c.Sentiment.Finalize(sentimentEnv); err != nil {
		return fmt.Errorf("sentiment: %w", err)
	}
	if err := c.Category.Finalize(categoryEnv); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay. Non-empty keyword lists
// replace the base lists.
func (c *EnrichmentConfig) Merge(overlay *EnrichmentConfig) {
	c.Sentiment.Merge(&overlay.Sentiment)
	c.Category.Merge(&overlay.Category)
	if len(overlay.Keywords.Technical) > 0 {
		c.Keywords.Technical = overlay.Keywords.Technical
	}
	if len(overlay.Keywords.Payment) > 0 {
		c.Keywords.Payment = overlay.Keywords.Payment
	}
}
