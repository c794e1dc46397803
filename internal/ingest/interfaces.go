package ingest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"paisa/alert-ingest/internal/models"
)

// Message is one candidate alert returned by the message source. Body carries
// the text when the source already has it; Attachments carry raw image bytes
// that still need OCR.
type Message struct {
	ID          string
	Body        string
	Attachments [][]byte
	ReceivedAt  time.Time
}

// MessageSource lists recent alert messages for one account scope. The
// orchestrator depends only on this shape; the email provider client behind
// it is an external collaborator.
type MessageSource interface {
	ListRecentAlerts(ctx context.Context, scope string, maxResults, daysBack int) ([]Message, error)
}

// OCRBackend converts image bytes to text. Failures surface as empty or
// low-quality text downstream, never as a run abort.
type OCRBackend interface {
	ImageToText(ctx context.Context, image []byte) (string, error)
}

// FieldResolver resolves one raw alert into a parsed alert, consulting the
// fallback backend when needed.
type FieldResolver interface {
	Resolve(ctx context.Context, raw models.RawAlert) (*models.ParsedAlert, error)
}

// TransactionStore is the storage collaborator. FindCandidateDuplicates
// returns the bounded recent set the dedup gate inspects; indexing for that
// query is storage's concern.
type TransactionStore interface {
	FindCandidateDuplicates(ctx context.Context, scope string, amount decimal.Decimal, direction models.Direction, from, to time.Time) ([]*models.Transaction, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
}
