package extract

import (
	"regexp"
	"strings"

	"paisa/alert-ingest/internal/models"
)

// Merchant capture patterns. "to <merchant>" outranks "at <merchant>": debit
// alerts phrase the counterparty with "to", credit alerts use "at" less
// reliably. The non-greedy capture stops before trailing clauses ("on
// 12-Jan", "via UPI") and list punctuation.
var merchantPatterns = []struct {
	rule string
	re   *regexp.Regexp
}{
	{rule: "to", re: regexp.MustCompile(`(?i)\bto\s+([A-Za-z0-9][A-Za-z0-9 &.\-]{1,}?)(?:\s+(?:on|at|via|using|from)\b|\s*[,;:\n]|$)`)},
	{rule: "at", re: regexp.MustCompile(`(?i)\bat\s+([A-Za-z0-9][A-Za-z0-9 &.\-]{1,}?)(?:\s+(?:on|at|via|using|from)\b|\s*[,;:\n]|$)`)},
}

// Default words that disqualify a capture as a merchant name. "credited to
// your account" must not yield the merchant "your account".
var defaultMerchantNoise = []string{"your", "you", "account", "a/c", "bank", "the", "my"}

// MerchantExtractor extracts the counterparty/merchant name from alert text.
type MerchantExtractor struct {
	noise map[string]struct{}
}

// NewMerchantExtractor creates a MerchantExtractor with the default noise
// word list.
func NewMerchantExtractor() *MerchantExtractor {
	return NewMerchantExtractorWithNoise(nil)
}

// NewMerchantExtractorWithNoise creates a MerchantExtractor whose noise word
// list is extended with the given words (e.g. from the rules file).
func NewMerchantExtractorWithNoise(extra []string) *MerchantExtractor {
	noise := make(map[string]struct{}, len(defaultMerchantNoise)+len(extra))
	for _, w := range defaultMerchantNoise {
		noise[w] = struct{}{}
	}
	for _, w := range extra {
		noise[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &MerchantExtractor{noise: noise}
}

// Kind implements Extractor.
func (e *MerchantExtractor) Kind() models.FieldKind {
	return models.FieldMerchant
}

// Extract returns at most one candidate per pattern: the first match in
// document order whose leading word is not a noise word.
func (e *MerchantExtractor) Extract(text string) []models.FieldCandidate {
	var candidates []models.FieldCandidate
	for rank, p := range merchantPatterns {
		for _, match := range p.re.FindAllStringSubmatch(text, -1) {
			value := normalizeMerchant(match[1])
			if value == "" || e.isNoise(value) {
				continue
			}
			candidates = append(candidates, models.FieldCandidate{
				Kind:  models.FieldMerchant,
				Raw:   match[0],
				Value: value,
				Rule:  p.rule,
				Rank:  rank,
			})
			break
		}
	}
	return candidates
}

// isNoise reports whether the capture starts with a disqualified word.
func (e *MerchantExtractor) isNoise(value string) bool {
	first := strings.ToLower(strings.Fields(value)[0])
	_, ok := e.noise[first]
	return ok
}

// normalizeMerchant trims punctuation left over from the capture boundary and
// collapses internal whitespace. Captures shorter than 3 characters are
// discarded.
func normalizeMerchant(raw string) string {
	value := collapseSpaces(raw)
	value = strings.TrimRight(value, ".- ")
	if len(value) < 3 {
		return ""
	}
	return value
}
