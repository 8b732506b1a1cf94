package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/triage/internal/config"
	"github.com/JaimeStill/triage/internal/providers"
)

const baseConfig = `
shutdown_timeout = "20s"
version = "0.2.0"

[server]
host = "127.0.0.1"
port = 8080

[database]
host = "localhost"
port = 5432
name = "triage"
user = "triage"
password = "triage"

[api]
base_path = "/api"
max_body_size = "512KB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[enrichment.sentiment]
api_key = "file-key"

[enrichment.category]
provider = "ollama"
base_url = "http://localhost:11434"

[enrichment.keywords]
technical = ["bug"]
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[enrichment.keywords]
payment = ["invoice"]
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 20*time.Second {
		t.Errorf("shutdown timeout: got %s, want 20s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.API.MaxBodySizeBytes() != 512*1024 {
		t.Errorf("max body size: got %d, want %d", cfg.API.MaxBodySizeBytes(), 512*1024)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 || cfg.API.Pagination.MaxPageSize != 50 {
		t.Errorf("pagination: got %+v", cfg.API.Pagination)
	}
	if !cfg.Enrichment.Sentiment.Configured() {
		t.Error("sentiment should be configured from the file key")
	}
	if cfg.Enrichment.Category.Provider != providers.ProviderOllama || !cfg.Enrichment.Category.Configured() {
		t.Errorf("category: got %+v", cfg.Enrichment.Category)
	}
	if cfg.Enrichment.Category.Model != "llama3.1" {
		t.Errorf("category model default: got %s, want llama3.1", cfg.Enrichment.Category.Model)
	}
	if len(cfg.Enrichment.Keywords.Technical) != 1 || cfg.Enrichment.Keywords.Technical[0] != "bug" {
		t.Errorf("technical keywords: got %v", cfg.Enrichment.Keywords.Technical)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv(config.EnvTriageEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
	if cfg.Enrichment.Keywords.Technical[0] != "bug" || cfg.Enrichment.Keywords.Payment[0] != "invoice" {
		t.Errorf("keywords: got %+v", cfg.Enrichment.Keywords)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv(config.EnvTriageVersion, "2.0.0")
	t.Setenv("TRIAGE_SERVER_PORT", "3000")
	t.Setenv(config.EnvAPIMaxBodySize, "2MB")
	t.Setenv("TRIAGE_SENTIMENT_API_KEY", "env-key")
	t.Setenv("TRIAGE_CATEGORY_PROVIDER", "bedrock")
	t.Setenv("TRIAGE_CATEGORY_REGION", "us-east-1")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.API.MaxBodySizeBytes() != 2*1024*1024 {
		t.Errorf("max body size: got %d", cfg.API.MaxBodySizeBytes())
	}
	if cfg.Enrichment.Sentiment.APIKey != "env-key" {
		t.Errorf("sentiment key: got %s, want env-key", cfg.Enrichment.Sentiment.APIKey)
	}
	if cfg.Enrichment.Category.Provider != providers.ProviderBedrock || !cfg.Enrichment.Category.Configured() {
		t.Errorf("category: got %+v", cfg.Enrichment.Category)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("TRIAGE_DB_NAME", "testdb")
	t.Setenv("TRIAGE_DB_USER", "testuser")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base path default: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.MaxBodySizeBytes() != 1024*1024 {
		t.Errorf("max body size default: got %d, want 1MB", cfg.API.MaxBodySizeBytes())
	}
	if cfg.Enrichment.Category.Provider != providers.ProviderOpenAI {
		t.Errorf("category provider default: got %s, want openai", cfg.Enrichment.Category.Provider)
	}
	if cfg.Enrichment.Category.MaxTokens != 1 {
		t.Errorf("category max tokens default: got %d, want 1", cfg.Enrichment.Category.MaxTokens)
	}
}

func TestLoadConventionalCredentials(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("TRIAGE_DB_NAME", "testdb")
	t.Setenv("TRIAGE_DB_USER", "testuser")

	t.Run("unset disables providers", func(t *testing.T) {
		t.Setenv(config.EnvAPILayerAPIKey, "")
		t.Setenv(config.EnvOpenAIAPIKey, "")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cfg.Enrichment.Sentiment.Configured() || cfg.Enrichment.Category.Configured() {
			t.Error("providers should be unconfigured without credentials")
		}
	})

	t.Run("conventional variables configure providers", func(t *testing.T) {
		t.Setenv(config.EnvAPILayerAPIKey, "apilayer")
		t.Setenv(config.EnvOpenAIAPIKey, "sk-test")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cfg.Enrichment.Sentiment.APIKey != "apilayer" {
			t.Errorf("sentiment key: got %s", cfg.Enrichment.Sentiment.APIKey)
		}
		if cfg.Enrichment.Category.APIKey != "sk-test" || !cfg.Enrichment.Category.Configured() {
			t.Errorf("category: got %+v", cfg.Enrichment.Category)
		}
	})

	t.Run("prefixed variables win", func(t *testing.T) {
		t.Setenv(config.EnvOpenAIAPIKey, "sk-conventional")
		t.Setenv("TRIAGE_CATEGORY_API_KEY", "sk-prefixed")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cfg.Enrichment.Category.APIKey != "sk-prefixed" {
			t.Errorf("category key: got %s, want sk-prefixed", cfg.Enrichment.Category.APIKey)
		}
	})
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing db name", map[string]string{"TRIAGE_DB_USER": "u"}},
		{"invalid shutdown timeout", map[string]string{config.EnvTriageShutdownTimeout: "soon"}},
		{"invalid body size", map[string]string{config.EnvAPIMaxBodySize: "lots"}},
		{"unknown category provider", map[string]string{"TRIAGE_CATEGORY_PROVIDER": "cohere"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv("TRIAGE_DB_NAME", "testdb")
			t.Setenv("TRIAGE_DB_USER", "testuser")
			if tt.name == "missing db name" {
				t.Setenv("TRIAGE_DB_NAME", "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := config.Load(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
