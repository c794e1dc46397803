// Package extract implements the field extractors of the alert pipeline.
//
// Each extractor is a pure matcher over raw alert text: it tries an ordered
// list of patterns and returns every candidate it finds, ranked by the
// position of the producing pattern. Extractors never fail; an absent field
// is an empty candidate list.
package extract

import (
	"regexp"
	"strings"

	"paisa/alert-ingest/internal/models"
)

// Extractor produces ranked field candidates for one field kind.
type Extractor interface {
	Kind() models.FieldKind
	Extract(text string) []models.FieldCandidate
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// collapseSpaces trims a matched value and folds internal whitespace runs
// into single spaces.
func collapseSpaces(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}
