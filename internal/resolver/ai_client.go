package resolver

import (
	"context"

	"paisa/alert-ingest/internal/models"
)

// AIClient defines the interface for the LLM-based fallback extractor.
// The abstraction keeps the selection/merging logic testable with
// deterministic fakes and free of network or credential concerns.
type AIClient interface {
	// ExtractFields asks the backend to extract transaction fields from raw
	// alert text. Implementations return a ParsedAlert-shaped result or an
	// error; they never fabricate an amount they did not find.
	ExtractFields(ctx context.Context, text string) (*models.ParsedAlert, error)
}
