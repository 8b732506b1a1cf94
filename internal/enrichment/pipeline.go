package enrichment

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Pipeline runs both classifiers over one complaint concurrently.
type Pipeline struct {
	sentiment *SentimentClassifier
	category  *CategoryClassifier
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline from the two classifiers.
func NewPipeline(
	sentiment *SentimentClassifier,
	category *CategoryClassifier,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		sentiment: sentiment,
		category:  category,
		logger:    logger.With("system", "enrichment"),
	}
}

// Enrich classifies text and returns once both labels are available.
func (p *Pipeline) Enrich(ctx context.Context, text string) Result {
	var (
		sentiment Sentiment
		category  Category
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sentiment = p.sentiment.Classify(gctx, text)
		return gctx.Err()
	})

	g.Go(func() error {
		category = p.category.Classify(gctx, text)
		return gctx.Err()
	})

	// Classifiers always yield a label; an error here means ctx ended
	// while they ran and the labels are fallbacks.
	if err := g.Wait(); err != nil {
		p.logger.WarnContext(ctx, "enrichment interrupted", "error", err)
	}

	p.logger.InfoContext(ctx, "complaint enriched",
		"sentiment", sentiment,
		"category", category,
	)

	return Result{Sentiment: sentiment, Category: category}
}
