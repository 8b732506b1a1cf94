package providers

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

// Category provider names.
const (
	ProviderOpenAI  = "openai"
	ProviderOllama  = "ollama"
	ProviderBedrock = "bedrock"
)

var categoryProviders = []string{ProviderOpenAI, ProviderOllama, ProviderBedrock}

// SentimentConfig holds APILayer sentiment settings.
type SentimentConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// SentimentEnv maps sentiment config fields to environment variable names.
type SentimentEnv struct {
	APIKey  string
	BaseURL string
	Timeout string
}

// Configured reports whether an API key is present.
func (c *SentimentConfig) Configured() bool {
	return c.APIKey != ""
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *SentimentConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SentimentConfig) Finalize(env *SentimentEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *SentimentConfig) Merge(overlay *SentimentConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *SentimentConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultAPILayerURL
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

func (c *SentimentConfig) loadEnv(env *SentimentEnv) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *SentimentConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// CategoryConfig holds language model settings for the category provider.
type CategoryConfig struct {
	Provider    string  `toml:"provider"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	Region      string  `toml:"region"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
	Timeout     string  `toml:"timeout"`
}

// CategoryEnv maps category config fields to environment variable names.
type CategoryEnv struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Region      string
	MaxTokens   string
	Temperature string
	Timeout     string
}

// Configured reports whether the selected provider has its credential:
// an API key for openai, a base URL for ollama, a region for bedrock.
func (c *CategoryConfig) Configured() bool {
	switch c.Provider {
	case ProviderOpenAI:
		return c.APIKey != ""
	case ProviderOllama:
		return c.BaseURL != ""
	case ProviderBedrock:
		return c.Region != ""
	}
	return false
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *CategoryConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CategoryConfig) Finalize(env *CategoryEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	c.loadModelDefault()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CategoryConfig) Merge(overlay *CategoryConfig) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Region != "" {
		c.Region = overlay.Region
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *CategoryConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 1
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

func (c *CategoryConfig) loadModelDefault() {
	if c.Model != "" {
		return
	}
	switch c.Provider {
	case ProviderOpenAI:
		c.Model = "gpt-3.5-turbo"
	case ProviderOllama:
		c.Model = "llama3.1"
	case ProviderBedrock:
		c.Model = "anthropic.claude-3-haiku-20240307-v1:0"
	}
}

func (c *CategoryConfig) loadEnv(env *CategoryEnv) {
	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.Region != "" {
		if v := os.Getenv(env.Region); v != "" {
			c.Region = v
		}
	}
	if env.MaxTokens != "" {
		if v := os.Getenv(env.MaxTokens); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxTokens = n
			}
		}
	}
	if env.Temperature != "" {
		if v := os.Getenv(env.Temperature); v != "" {
			if f, err := strconv.ParseFloat(v, 32); err == nil {
				c.Temperature = float32(f)
			}
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *CategoryConfig) validate() error {
	if !slices.Contains(categoryProviders, c.Provider) {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
