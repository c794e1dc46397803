package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"paisa/alert-ingest/internal/models"
)

// amountPattern pairs a pattern identity with its compiled regex. The capture
// group holds the numeric part, possibly with thousands separators.
type amountPattern struct {
	rule string
	re   *regexp.Regexp
}

// Patterns are tried in priority order: a currency-prefixed amount is the
// strongest signal, a currency-suffixed amount the fallback. Within one
// pattern the first match in document order wins.
var amountPatterns = []amountPattern{
	{rule: "currency_prefix", re: regexp.MustCompile(`(?i)(?:\brs\b\.?|\binr\b|₹)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)},
	{rule: "currency_suffix", re: regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:rs\b\.?|inr\b)`)},
}

// AmountExtractor extracts monetary amounts from alert text.
type AmountExtractor struct{}

// NewAmountExtractor creates an AmountExtractor.
func NewAmountExtractor() *AmountExtractor {
	return &AmountExtractor{}
}

// Kind implements Extractor.
func (e *AmountExtractor) Kind() models.FieldKind {
	return models.FieldAmount
}

// Extract returns one candidate per matching pattern, ranked by pattern
// priority. Thousands separators are stripped and the value is normalized to
// two decimal places.
func (e *AmountExtractor) Extract(text string) []models.FieldCandidate {
	var candidates []models.FieldCandidate
	for rank, p := range amountPatterns {
		match := p.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		raw := match[1]
		dec, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil || dec.IsNegative() {
			continue
		}
		candidates = append(candidates, models.FieldCandidate{
			Kind:  models.FieldAmount,
			Raw:   match[0],
			Value: dec.Round(2).StringFixed(2),
			Rule:  p.rule,
			Rank:  rank,
		})
	}
	return candidates
}
