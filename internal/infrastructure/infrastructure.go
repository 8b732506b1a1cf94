// Package infrastructure assembles the dependencies that domain systems
// require: lifecycle coordination, logging, the database, and the
// enrichment pipeline.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/JaimeStill/triage/internal/config"
	"github.com/JaimeStill/triage/internal/enrichment"
	"github.com/JaimeStill/triage/internal/providers"
	"github.com/JaimeStill/triage/pkg/database"
	"github.com/JaimeStill/triage/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Enrichment *enrichment.Pipeline
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	pipeline, err := NewEnrichment(lc.Context(), &cfg.Enrichment, logger)
	if err != nil {
		return nil, fmt.Errorf("enrichment init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:  lc,
		Logger:     logger,
		Database:   db,
		Enrichment: pipeline,
	}, nil
}

// NewEnrichment builds the enrichment pipeline from provider settings.
// Providers without credentials are left unconfigured, which selects the
// fallback labels.
func NewEnrichment(
	ctx context.Context,
	cfg *config.EnrichmentConfig,
	logger *slog.Logger,
) (*enrichment.Pipeline, error) {
	sentimentProvider := providers.NewSentiment(&cfg.Sentiment, &http.Client{})

	categoryProvider, err := providers.NewCategory(ctx, &cfg.Category)
	if err != nil {
		return nil, fmt.Errorf("category provider: %w", err)
	}

	sentiment := enrichment.NewSentimentClassifier(
		sentimentProvider,
		cfg.Sentiment.Configured(),
		cfg.Sentiment.TimeoutDuration(),
		logger,
	)

	category := enrichment.NewCategoryClassifier(
		categoryProvider,
		cfg.Category.Configured(),
		cfg.Category.TimeoutDuration(),
		cfg.Keywords,
		logger,
	)

	logger.Info(
		"enrichment configured",
		"sentiment", sentiment.Configured(),
		"category_provider", cfg.Category.Provider,
		"category", category.Configured(),
	)

	return enrichment.NewPipeline(sentiment, category, logger), nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
