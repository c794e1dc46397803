package extract

import (
	"strings"

	"paisa/alert-ingest/internal/models"
)

// Default keyword sets. The two sets must stay disjoint: ambiguity is decided
// by both sets matching, not by a keyword belonging to both.
var (
	defaultDebitKeywords  = []string{"debited", "debit", "spent", "withdrawn", "purchase", "paid"}
	defaultCreditKeywords = []string{"credited", "credit", "received", "deposited", "refund"}
)

// RuleAmbiguousDirection is the rule name reported when both keyword sets
// match. The parser uses it to flag a degraded-confidence result.
const RuleAmbiguousDirection = "ambiguous_keywords"

// DirectionExtractor decides debit vs credit from keyword sets.
// When both sets match the text, the ambiguity is reported as an unknown
// direction rather than silently picking one.
type DirectionExtractor struct {
	debitKeywords  []string
	creditKeywords []string
}

// NewDirectionExtractor creates a DirectionExtractor with the default
// keyword sets.
func NewDirectionExtractor() *DirectionExtractor {
	return NewDirectionExtractorWithKeywords(defaultDebitKeywords, defaultCreditKeywords)
}

// NewDirectionExtractorWithKeywords creates a DirectionExtractor with custom
// keyword sets, e.g. loaded from the rules file. Empty sets fall back to the
// defaults.
func NewDirectionExtractorWithKeywords(debit, credit []string) *DirectionExtractor {
	if len(debit) == 0 {
		debit = defaultDebitKeywords
	}
	if len(credit) == 0 {
		credit = defaultCreditKeywords
	}
	return &DirectionExtractor{debitKeywords: debit, creditKeywords: credit}
}

// Kind implements Extractor.
func (e *DirectionExtractor) Kind() models.FieldKind {
	return models.FieldDirection
}

// Extract scans case-insensitively for debit and credit keywords.
// Exactly one set matching yields that direction; both sets matching yields
// a single "unknown" candidate tagged RuleAmbiguousDirection; neither set
// matching yields no candidate.
func (e *DirectionExtractor) Extract(text string) []models.FieldCandidate {
	lower := strings.ToLower(text)
	debitHit := firstKeyword(lower, e.debitKeywords)
	creditHit := firstKeyword(lower, e.creditKeywords)

	switch {
	case debitHit != "" && creditHit != "":
		return []models.FieldCandidate{{
			Kind:  models.FieldDirection,
			Raw:   debitHit + "," + creditHit,
			Value: string(models.DirectionUnknown),
			Rule:  RuleAmbiguousDirection,
		}}
	case debitHit != "":
		return []models.FieldCandidate{{
			Kind:  models.FieldDirection,
			Raw:   debitHit,
			Value: string(models.DirectionDebit),
			Rule:  "debit_keywords",
		}}
	case creditHit != "":
		return []models.FieldCandidate{{
			Kind:  models.FieldDirection,
			Raw:   creditHit,
			Value: string(models.DirectionCredit),
			Rule:  "credit_keywords",
		}}
	default:
		return nil
	}
}

// firstKeyword returns the first keyword of the set found in the lowercased
// text, or "" when none match.
func firstKeyword(lower string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}
