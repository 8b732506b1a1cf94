package enrichment

import (
	"slices"
	"strings"
	"unicode"
)

var (
	technicalPrefixes = []string{"тех", "tech"}
	paymentPrefixes   = []string{"оплат", "payment"}
	paymentAnswers    = []string{"pay"}
	otherAnswers      = []string{"other", "другое"}
)

// NormalizeAnswer reduces a raw model answer to a single lower-case token:
// surrounding whitespace is trimmed, only the first word is kept, and
// punctuation on either side of it is removed.
func NormalizeAnswer(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}

	token := strings.TrimFunc(fields[0], func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	return strings.ToLower(token)
}

// MapAnswer maps a normalized answer onto a category. The second result is
// false when the answer matches no known form.
func MapAnswer(answer string) (Category, bool) {
	switch {
	case hasAnyPrefix(answer, technicalPrefixes):
		return CategoryTechnical, true
	case hasAnyPrefix(answer, paymentPrefixes), slices.Contains(paymentAnswers, answer):
		return CategoryPayment, true
	case slices.Contains(otherAnswers, answer):
		return CategoryOther, true
	}
	return "", false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
