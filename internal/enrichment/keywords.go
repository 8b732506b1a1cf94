package enrichment

import "strings"

// Keywords holds the substring lists of the fallback heuristic.
// Technical keywords are always checked before payment keywords.
type Keywords struct {
	Technical []string `toml:"technical"`
	Payment   []string `toml:"payment"`
}

// DefaultKeywords returns the built-in Russian and English keyword lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Technical: []string{
			"ошибка", "error", "сайт", "server", "сервер",
			"не работает", "не открывается", "500", "503",
			"website", "outage",
		},
		Payment: []string{
			"деньги", "оплат", "payment", "pay", "charge",
			"списал", "списали", "дважды",
			"refund", "money", "billing",
		},
	}
}

// Match classifies text by substring search over the lower-cased text.
func (k Keywords) Match(text string) Category {
	lower := strings.ToLower(text)

	if containsAny(lower, k.Technical) {
		return CategoryTechnical
	}
	if containsAny(lower, k.Payment) {
		return CategoryPayment
	}
	return CategoryOther
}

func (k Keywords) normalize() Keywords {
	defaults := DefaultKeywords()

	technical := lowerAll(k.Technical)
	if len(technical) == 0 {
		technical = defaults.Technical
	}

	payment := lowerAll(k.Payment)
	if len(payment) == 0 {
		payment = defaults.Payment
	}

	return Keywords{Technical: technical, Payment: payment}
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
