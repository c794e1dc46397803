// Package resolver selects between the rule-based alert parser and the
// LLM-based fallback extractor, and merges their results.
package resolver

import (
	"context"
	"time"

	"paisa/alert-ingest/internal/alertparser"
	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
)

// Resolver always tries the deterministic parser first; the fallback backend
// is consulted only on a parse failure or a low-confidence result, and its
// failure never masks the rule-based outcome.
type Resolver struct {
	parser  *alertparser.Parser
	ai      AIClient // nil means fallback unavailable
	timeout time.Duration
	log     logging.Logger
}

// New creates a Resolver. ai may be nil when the fallback backend is disabled
// or unconfigured; timeout bounds each fallback invocation (0 means no bound).
func New(parser *alertparser.Parser, ai AIClient, timeout time.Duration, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Resolver{parser: parser, ai: ai, timeout: timeout, log: logger}
}

// Resolve parses the alert, falling back to the LLM backend when the
// rule-based result is a failure or low-confidence. UsedFallback is set on
// the result whenever the backend contributed, so callers can track cost.
func (r *Resolver) Resolve(ctx context.Context, raw models.RawAlert) (*models.ParsedAlert, error) {
	parsed, parseErr := r.parser.Parse(raw)
	if parseErr == nil && !r.needsFallback(parsed) {
		return parsed, nil
	}

	if r.ai == nil {
		// Fallback unavailable: propagate the rule-based outcome as-is.
		return parsed, parseErr
	}

	fallback, err := r.invokeFallback(ctx, raw)
	if err != nil {
		r.log.WithError(err).WithField(logging.FieldSourceID, raw.SourceID).
			Warn("Fallback extraction failed, keeping rule-based outcome")
		return parsed, parseErr
	}

	if parseErr != nil {
		// Rules found nothing usable; the fallback result stands alone.
		fallback.Raw = raw
		fallback.UsedFallback = true
		return fallback, nil
	}
	return merge(parsed, fallback), nil
}

// needsFallback reports whether a successful rule-based parse is still too
// weak to stand alone: an ambiguous direction, or neither a merchant nor a
// reference to anchor the record.
func (r *Resolver) needsFallback(parsed *models.ParsedAlert) bool {
	return parsed.LowConfidence || (parsed.Merchant == "" && parsed.Reference == "")
}

// invokeFallback calls the backend with the configured timeout. Every
// invocation is logged: fallback calls are the only external calls on this
// path and the caller tracks their cost.
func (r *Resolver) invokeFallback(ctx context.Context, raw models.RawAlert) (*models.ParsedAlert, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	parsed, err := r.ai.ExtractFields(ctx, raw.Text)
	r.log.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "fallback_extraction"},
		logging.Field{Key: logging.FieldSourceID, Value: raw.SourceID},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
	).Info("Invoked fallback extraction backend")
	return parsed, err
}

// merge fills the gaps of the rule-based result from the fallback result.
// Rule-extracted values win wherever both are present.
func merge(parsed, fallback *models.ParsedAlert) *models.ParsedAlert {
	if parsed.Direction == models.DirectionUnknown && fallback.Direction != models.DirectionUnknown {
		parsed.Direction = fallback.Direction
		parsed.LowConfidence = false
	}
	if parsed.Merchant == "" {
		parsed.Merchant = fallback.Merchant
	}
	if parsed.Reference == "" {
		parsed.Reference = fallback.Reference
	}
	if parsed.AccountSuffix == "" {
		parsed.AccountSuffix = fallback.AccountSuffix
	}
	parsed.UsedFallback = true
	return parsed
}
