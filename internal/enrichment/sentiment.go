package enrichment

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

var knownSentiments = []Sentiment{
	SentimentPositive,
	SentimentNegative,
	SentimentNeutral,
}

// SentimentClassifier labels complaint text through a SentimentProvider.
type SentimentClassifier struct {
	provider   SentimentProvider
	configured bool
	timeout    time.Duration
	logger     *slog.Logger
}

// NewSentimentClassifier creates a SentimentClassifier. When configured is false
// or provider is nil, Classify returns SentimentUnknown without calling out.
func NewSentimentClassifier(
	provider SentimentProvider,
	configured bool,
	timeout time.Duration,
	logger *slog.Logger,
) *SentimentClassifier {
	return &SentimentClassifier{
		provider:   provider,
		configured: configured && provider != nil,
		timeout:    timeout,
		logger:     logger.With("classifier", "sentiment"),
	}
}

// Configured reports whether Classify will contact the provider.
func (c *SentimentClassifier) Configured() bool {
	return c.configured
}

// Classify returns the provider's label for text, or SentimentUnknown when the
// provider is not configured, fails, or answers outside the known label set.
func (c *SentimentClassifier) Classify(ctx context.Context, text string) Sentiment {
	if !c.configured {
		return SentimentUnknown
	}

	callCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	label, err := c.provider.Sentiment(callCtx, text)
	if err != nil {
		c.logger.WarnContext(ctx, "sentiment provider failed",
			"provider", c.provider.Name(),
			"error", err,
		)
		return SentimentUnknown
	}

	s := Sentiment(label)
	if !slices.Contains(knownSentiments, s) {
		c.logger.WarnContext(ctx, "sentiment label not recognized",
			"provider", c.provider.Name(),
			"label", label,
		)
		return SentimentUnknown
	}

	c.logger.DebugContext(ctx, "sentiment classified", "sentiment", s)
	return s
}
