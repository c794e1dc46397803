// Package dedup decides whether a candidate transaction duplicates one
// already stored, guaranteeing idempotent re-ingestion of the same alert.
package dedup

import (
	"time"

	"paisa/alert-ingest/internal/models"
)

// Gate applies the duplicate-equivalence policy. window is the timestamp
// tolerance for amount/direction matches; an identical non-empty reference
// number is the stronger signal and ignores the window entirely. lookback
// bounds how far back the candidate set is fetched, so reference matches can
// still be found well outside the tolerance window.
type Gate struct {
	window   models.Window
	lookback time.Duration
}

// DefaultLookback bounds the stored candidate set when no lookback is
// configured.
const DefaultLookback = 90 * 24 * time.Hour

// New creates a Gate with the given tolerance window and candidate lookback.
// A zero lookback falls back to DefaultLookback.
func New(window models.Window, lookback time.Duration) Gate {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return Gate{window: window, lookback: lookback}
}

// Window returns the configured tolerance window.
func (g Gate) Window() models.Window {
	return g.window
}

// LookbackBounds returns the storage query bounds for a candidate occurring
// at t: the full lookback into the past, the tolerance window into the
// future.
func (g Gate) LookbackBounds(t time.Time) (from, to time.Time) {
	return t.Add(-g.lookback), t.Add(g.window.Tolerance)
}

// IsDuplicate reports whether candidate duplicates any transaction in
// existing.
func (g Gate) IsDuplicate(candidate *models.Transaction, existing []*models.Transaction) bool {
	_, dup := g.FindDuplicate(candidate, existing)
	return dup
}

// FindDuplicate returns the first stored transaction considered equivalent
// to candidate, if any. Two transactions are equivalent when they carry the
// same non-empty reference number, or when they share account scope, exact
// amount and direction with source timestamps inside the tolerance window.
func (g Gate) FindDuplicate(candidate *models.Transaction, existing []*models.Transaction) (*models.Transaction, bool) {
	for _, prior := range existing {
		if prior == nil || prior.IsDeleted {
			continue
		}
		if candidate.Reference != "" && candidate.Reference == prior.Reference {
			return prior, true
		}
		if candidate.Scope != prior.Scope {
			continue
		}
		if candidate.Direction != prior.Direction {
			continue
		}
		if !candidate.Amount.Equal(prior.Amount) {
			continue
		}
		if g.window.Contains(candidate.OccurredAt, prior.OccurredAt) {
			return prior, true
		}
	}
	return nil, false
}
