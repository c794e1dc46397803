package extract

import (
	"regexp"

	"paisa/alert-ingest/internal/models"
)

// Reference patterns in priority order. The labeled form requires a separator
// after the label so that e.g. "refund" never yields a match; the bare form
// catches RRN/UTR identifiers glued to their prefix ("UTR1234567890").
var referencePatterns = []struct {
	rule string
	re   *regexp.Regexp
}{
	{rule: "labeled", re: regexp.MustCompile(`(?i)\b(?:utr|rrn|txn\s*id|transaction\s*id|reference\s*(?:no\.?|number)?|ref\.?)[\s:#\-]+([A-Za-z0-9][A-Za-z0-9/\-]{3,})`)},
	{rule: "bare_rrn_utr", re: regexp.MustCompile(`(?i)\b((?:utr|rrn)[0-9]{6,})\b`)},
}

// ReferenceExtractor extracts bank reference numbers (RRN/UTR/transaction id).
type ReferenceExtractor struct{}

// NewReferenceExtractor creates a ReferenceExtractor.
func NewReferenceExtractor() *ReferenceExtractor {
	return &ReferenceExtractor{}
}

// Kind implements Extractor.
func (e *ReferenceExtractor) Kind() models.FieldKind {
	return models.FieldReference
}

// Extract returns one candidate per matching pattern, first match in document
// order, ranked by pattern priority.
func (e *ReferenceExtractor) Extract(text string) []models.FieldCandidate {
	var candidates []models.FieldCandidate
	for rank, p := range referencePatterns {
		match := p.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidates = append(candidates, models.FieldCandidate{
			Kind:  models.FieldReference,
			Raw:   match[0],
			Value: match[1],
			Rule:  p.rule,
			Rank:  rank,
		})
	}
	return candidates
}
