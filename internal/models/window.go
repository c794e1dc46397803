package models

import "time"

// Window is a symmetric timestamp tolerance used by the deduplication policy.
// It is configuration, never hard-coded by the pipeline.
type Window struct {
	Tolerance time.Duration
}

// Contains reports whether two timestamps fall within the tolerance of each
// other.
func (w Window) Contains(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= w.Tolerance
}

// Around returns the [from, to] bounds of the window centered on t, the shape
// the storage collaborator's candidate query expects.
func (w Window) Around(t time.Time) (from, to time.Time) {
	return t.Add(-w.Tolerance), t.Add(w.Tolerance)
}
