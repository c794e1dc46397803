package extract

import (
	"regexp"

	"paisa/alert-ingest/internal/models"
)

// Account patterns in priority order: a labeled account/card reference first,
// a bare masked-digits pattern ("**1234"/"xx1234") as fallback.
var accountPatterns = []struct {
	rule string
	re   *regexp.Regexp
}{
	{rule: "labeled", re: regexp.MustCompile(`(?i)\b(?:a/c|acct|account|card)(?:\s+(?:no\.?|number|ending(?:\s+(?:in|with))?))?\s*[:.#]?\s*[xX*]*(\d{3,4})\b`)},
	{rule: "masked", re: regexp.MustCompile(`(?:\*{2,}|[xX]{2,})\s*(\d{3,4})\b`)},
}

// AccountExtractor extracts the trailing 3-4 digits identifying the account
// or card an alert refers to.
type AccountExtractor struct{}

// NewAccountExtractor creates an AccountExtractor.
func NewAccountExtractor() *AccountExtractor {
	return &AccountExtractor{}
}

// Kind implements Extractor.
func (e *AccountExtractor) Kind() models.FieldKind {
	return models.FieldAccount
}

// Extract returns one candidate per matching pattern, ranked by pattern
// priority.
func (e *AccountExtractor) Extract(text string) []models.FieldCandidate {
	var candidates []models.FieldCandidate
	for rank, p := range accountPatterns {
		match := p.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidates = append(candidates, models.FieldCandidate{
			Kind:  models.FieldAccount,
			Raw:   match[0],
			Value: match[1],
			Rule:  p.rule,
			Rank:  rank,
		})
	}
	return candidates
}
