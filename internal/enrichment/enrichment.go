// Package enrichment attaches a sentiment label and a category to complaint text.
// Both classifiers always produce a label: provider failures degrade to
// deterministic fallbacks and never surface to the caller.
package enrichment

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single provider call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Sentiment is the emotional tone label attached to a complaint.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentUnknown  Sentiment = "unknown"
)

// Sentiments lists every sentiment label, fallback included.
var Sentiments = []Sentiment{
	SentimentPositive,
	SentimentNegative,
	SentimentNeutral,
	SentimentUnknown,
}

// Category is the topical bucket attached to a complaint.
type Category string

const (
	CategoryTechnical Category = "technical"
	CategoryPayment   Category = "payment"
	CategoryOther     Category = "other"
)

// Categories lists every category label.
var Categories = []Category{
	CategoryTechnical,
	CategoryPayment,
	CategoryOther,
}

// Result is the pair of labels produced for one complaint.
type Result struct {
	Sentiment Sentiment `json:"sentiment"`
	Category  Category  `json:"category"`
}

// SentimentProvider returns the raw sentiment label an external service assigns to text.
type SentimentProvider interface {
	Name() string
	Sentiment(ctx context.Context, text string) (string, error)
}

// CategoryProvider returns the raw language model answer to the category prompt for text.
type CategoryProvider interface {
	Name() string
	Categorize(ctx context.Context, text string) (string, error)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
