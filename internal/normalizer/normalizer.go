// Package normalizer maps a ParsedAlert into the canonical Transaction
// record. It is a pure mapping layer: it never touches storage.
package normalizer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"paisa/alert-ingest/internal/models"
	"paisa/alert-ingest/internal/parsererror"
)

// Normalizer converts parsed alerts into canonical transactions.
// DefaultDirection controls what an unknown direction resolves to at storage
// time: left empty, an unknown direction is an explicit failure rather than a
// silent default.
type Normalizer struct {
	defaultDirection models.Direction
	now              func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDefaultDirection makes unknown-direction alerts normalize to the given
// direction instead of failing.
func WithDefaultDirection(d models.Direction) Option {
	return func(n *Normalizer) { n.defaultDirection = d }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// New creates a Normalizer. Without options, unknown direction fails.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize maps a parsed alert to a Transaction with safe defaults for all
// bookkeeping fields. UserDescription stays empty: it is reserved for user
// edits and never populated by ingestion.
func (n *Normalizer) Normalize(parsed *models.ParsedAlert, source models.TransactionSource, scope string) (*models.Transaction, error) {
	if parsed == nil {
		return nil, fmt.Errorf("cannot normalize nil parsed alert")
	}
	if !parsed.Amount.IsPositive() {
		return nil, parsererror.NewParseFailure(parsererror.ReasonUnparseable, parsed.Raw.Text)
	}

	direction := parsed.Direction
	if direction == models.DirectionUnknown {
		if n.defaultDirection == "" {
			return nil, parsererror.NewParseFailure(parsererror.ReasonAmbiguousDirection, parsed.Raw.Text)
		}
		direction = n.defaultDirection
	}

	now := n.now()
	occurredAt := parsed.Raw.ReceivedAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	return &models.Transaction{
		ID:            uuid.New().String(),
		Scope:         scope,
		Amount:        parsed.Amount.Round(2),
		Direction:     direction,
		AccountSuffix: parsed.AccountSuffix,
		Reference:     parsed.Reference,
		Merchant:      parsed.Merchant,
		Source:        source,
		OccurredAt:    occurredAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
