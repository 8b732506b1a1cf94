package enrichment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// CategoryTemplate is the prompt sent to the language model. The {text}
// placeholder receives the complaint text.
const CategoryTemplate = `Определи категорию жалобы: "{text}". Варианты: техническая, оплата, другое. Ответ только одним словом.`

// DefaultMaxTokens is the completion budget for a category answer.
const DefaultMaxTokens = 1

// ErrEmptyAnswer is returned by providers when the model produced no content.
var ErrEmptyAnswer = errors.New("empty model answer")

// CategoryPrompt renders CategoryTemplate for text.
func CategoryPrompt(text string) string {
	return strings.Replace(CategoryTemplate, "{text}", text, 1)
}

// CategoryClassifier labels complaint text with a language model attempt
// followed by a keyword heuristic.
type CategoryClassifier struct {
	provider   CategoryProvider
	configured bool
	timeout    time.Duration
	keywords   Keywords
	logger     *slog.Logger
}

// NewCategoryClassifier creates a CategoryClassifier. When configured is false
// or provider is nil, only the keyword heuristic runs. Empty keyword lists
// fall back to DefaultKeywords.
func NewCategoryClassifier(
	provider CategoryProvider,
	configured bool,
	timeout time.Duration,
	keywords Keywords,
	logger *slog.Logger,
) *CategoryClassifier {
	return &CategoryClassifier{
		provider:   provider,
		configured: configured && provider != nil,
		timeout:    timeout,
		keywords:   keywords.normalize(),
		logger:     logger.With("classifier", "category"),
	}
}

// Configured reports whether Classify will contact the provider.
func (c *CategoryClassifier) Configured() bool {
	return c.configured
}

// Classify returns the category for text. A mapped model answer wins;
// otherwise the keyword heuristic decides.
func (c *CategoryClassifier) Classify(ctx context.Context, text string) Category {
	if c.configured {
		if category, ok := c.attempt(ctx, text); ok {
			return category
		}
	}

	category := c.keywords.Match(text)
	c.logger.DebugContext(ctx, "category from keywords", "category", category)
	return category
}

func (c *CategoryClassifier) attempt(ctx context.Context, text string) (Category, bool) {
	callCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.provider.Categorize(callCtx, text)
	if err != nil {
		c.logger.WarnContext(ctx, "category provider failed, using keywords",
			"provider", c.provider.Name(),
			"error", err,
		)
		return "", false
	}

	answer := NormalizeAnswer(raw)
	if answer == "" {
		c.logger.WarnContext(ctx, "category provider failed, using keywords",
			"provider", c.provider.Name(),
			"error", ErrEmptyAnswer,
		)
		return "", false
	}

	category, ok := MapAnswer(answer)
	if !ok {
		c.logger.WarnContext(ctx, "unmapped category answer, using keywords",
			"provider", c.provider.Name(),
			"answer", raw,
		)
		return "", false
	}

	c.logger.DebugContext(ctx, "category from model", "answer", answer, "category", category)
	return category, true
}
