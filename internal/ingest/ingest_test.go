package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paisa/alert-ingest/internal/alertparser"
	"paisa/alert-ingest/internal/dedup"
	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
	"paisa/alert-ingest/internal/normalizer"
	"paisa/alert-ingest/internal/parsererror"
)

var runStart = time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)

// fakeSource serves canned messages per scope.
type fakeSource struct {
	messages map[string][]Message
	err      error
}

func (f *fakeSource) ListRecentAlerts(ctx context.Context, scope string, maxResults, daysBack int) ([]Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.messages[scope], nil
}

// panickingSource stands in for a collaborator with a latent bug.
type panickingSource struct{}

func (panickingSource) ListRecentAlerts(ctx context.Context, scope string, maxResults, daysBack int) ([]Message, error) {
	panic("nil credential")
}

// fakeOCR maps image bytes to text.
type fakeOCR struct {
	texts map[string]string
	err   error
}

func (f *fakeOCR) ImageToText(ctx context.Context, image []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.texts[string(image)], nil
}

// ruleResolver adapts the plain parser to the resolver interface, keeping
// these tests free of fallback behavior.
type ruleResolver struct {
	parser *alertparser.Parser
}

func (r ruleResolver) Resolve(ctx context.Context, raw models.RawAlert) (*models.ParsedAlert, error) {
	return r.parser.Parse(raw)
}

// memoryStore is an in-memory TransactionStore that honors the candidate
// query bounds the way the sqlite store does.
type memoryStore struct {
	txs       []*models.Transaction
	createErr error
	findErr   error
}

func (m *memoryStore) FindCandidateDuplicates(ctx context.Context, scope string, amount decimal.Decimal, direction models.Direction, from, to time.Time) ([]*models.Transaction, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*models.Transaction
	for _, tx := range m.txs {
		if tx.Scope != scope || !tx.Amount.Equal(amount) || tx.Direction != direction {
			continue
		}
		if tx.OccurredAt.Before(from) || tx.OccurredAt.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (m *memoryStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.txs = append(m.txs, tx)
	return nil
}

func newOrchestrator(source MessageSource, ocr OCRBackend, store TransactionStore) *Orchestrator {
	log := &logging.MockLogger{}
	return New(
		source,
		ocr,
		ruleResolver{parser: alertparser.New(log)},
		normalizer.New(),
		store,
		dedup.New(models.Window{Tolerance: 72 * time.Hour}, 0),
		log,
	)
}

func msg(id, body string, at time.Time) Message {
	return Message{ID: id, Body: body, ReceivedAt: at}
}

func TestRunCreatesTransactions(t *testing.T) {
	store := &memoryStore{}
	o := newOrchestrator(&fakeSource{messages: map[string][]Message{
		"primary": {
			msg("m1", "Rs.1,250.00 debited from A/c XX1234 to Amazon Pay on 12-Jan, Ref: UTR1234567890", runStart),
			msg("m2", "You have received INR 500 credited to your account, Ref RRN987654", runStart.Add(time.Hour)),
		},
	}}, nil, store)

	result, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)

	assert.Equal(t, models.IngestionResult{Created: 2}, result)
	require.Len(t, store.txs, 2)
	assert.Equal(t, "1250.00", store.txs[0].Amount.StringFixed(2))
	assert.Equal(t, models.DirectionDebit, store.txs[0].Direction)
	assert.Equal(t, models.SourceEmailIngestion, store.txs[0].Source)
	assert.Equal(t, "500.00", store.txs[1].Amount.StringFixed(2))
	assert.Equal(t, models.DirectionCredit, store.txs[1].Direction)
}

func TestRunIsIdempotent(t *testing.T) {
	messages := map[string][]Message{
		"primary": {
			msg("m1", "Rs.1,250.00 debited from A/c XX1234 to Amazon Pay, Ref: UTR1234567890", runStart),
		},
	}
	store := &memoryStore{}
	o := newOrchestrator(&fakeSource{messages: messages}, nil, store)

	first, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Created: 1}, first)

	// Re-ingesting the same alerts must not create new rows.
	second, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Skipped: 1}, second)
	assert.Len(t, store.txs, 1)
}

func TestRunDeduplicatesWithinRun(t *testing.T) {
	// The same alert delivered twice in one batch (e.g. SMS and email copy).
	store := &memoryStore{}
	o := newOrchestrator(&fakeSource{messages: map[string][]Message{
		"primary": {
			msg("m1", "Rs.750 debited to Swiggy, Ref: UTR555000111", runStart),
			msg("m2", "Rs.750 debited to Swiggy, Ref: UTR555000111", runStart.Add(time.Minute)),
		},
	}}, nil, store)

	result, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Created: 1, Skipped: 1}, result)
	assert.Len(t, store.txs, 1)
}

func TestRunDuplicateByReferenceOutsideWindow(t *testing.T) {
	// A stored transaction 30 days old with the same reference still blocks.
	prior := &models.Transaction{
		ID:         "prior",
		Scope:      "primary",
		Amount:     decimal.NewFromFloat(750),
		Direction:  models.DirectionDebit,
		Reference:  "UTR555000111",
		OccurredAt: runStart.AddDate(0, 0, -30),
	}
	store := &memoryStore{txs: []*models.Transaction{prior}}
	o := newOrchestrator(&fakeSource{messages: map[string][]Message{
		"primary": {msg("m1", "Rs.750 debited to Swiggy, Ref: UTR555000111", runStart)},
	}}, nil, store)

	result, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Skipped: 1}, result)
	assert.Len(t, store.txs, 1)
}

func TestRunIsolatesFailedMessages(t *testing.T) {
	store := &memoryStore{}
	o := newOrchestrator(&fakeSource{messages: map[string][]Message{
		"primary": {
			msg("m1", "Your OTP is 482913", runStart),
			msg("m2", "Rs.500 debited to Swiggy, Ref: UTR111222333", runStart.Add(time.Hour)),
			msg("m3", "Rs.200 debited and credited simultaneously", runStart.Add(2*time.Hour)),
		},
	}}, nil, store)

	result, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)

	// The unparseable and the ambiguous alerts fail; the good one lands.
	assert.Equal(t, models.IngestionResult{Created: 1, Failed: 2}, result)
	require.Len(t, store.txs, 1)
	assert.Equal(t, "500.00", store.txs[0].Amount.StringFixed(2))
}

func TestRunSourceFailure(t *testing.T) {
	o := newOrchestrator(&fakeSource{err: errors.New("connection refused")}, nil, &memoryStore{})

	_, err := o.Run(context.Background(), "primary", 100, 7)
	require.Error(t, err)

	var fetchErr *parsererror.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "primary", fetchErr.Scope)
}

func TestRunStoreFailuresCountAsFailed(t *testing.T) {
	store := &memoryStore{createErr: errors.New("disk full")}
	o := newOrchestrator(&fakeSource{messages: map[string][]Message{
		"primary": {msg("m1", "Rs.500 debited to Swiggy, Ref: UTR111222333", runStart)},
	}}, nil, store)

	result, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Failed: 1}, result)
}

func TestRunOCRAttachment(t *testing.T) {
	store := &memoryStore{}
	ocr := &fakeOCR{texts: map[string]string{
		"img-bytes": "Rs.320 debited to BigBasket, Ref: UTR999888777",
	}}
	o := newOrchestrator(&fakeSource{messages: map[string][]Message{
		"primary": {{
			ID:          "m1",
			Attachments: [][]byte{[]byte("img-bytes")},
			ReceivedAt:  runStart,
		}},
	}}, ocr, store)

	result, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Created: 1}, result)
	require.Len(t, store.txs, 1)
	assert.Equal(t, "320.00", store.txs[0].Amount.StringFixed(2))
}

func TestRunNoOCRBackendFailsImageMessage(t *testing.T) {
	store := &memoryStore{}
	o := newOrchestrator(&fakeSource{messages: map[string][]Message{
		"primary": {{ID: "m1", Attachments: [][]byte{[]byte("img")}, ReceivedAt: runStart}},
	}}, nil, store)

	result, err := o.Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Failed: 1}, result)
}

func TestRunAllIsolatesScopes(t *testing.T) {
	store := &memoryStore{}
	source := &fakeSource{messages: map[string][]Message{
		"primary": {msg("m1", "Rs.500 debited to Swiggy, Ref: UTR111222333", runStart)},
		// "secondary" has no messages and succeeds with an empty run.
	}}
	o := newOrchestrator(source, nil, store)

	outcomes := o.RunAll(context.Background(), []string{"primary", "secondary"}, 100, 7)
	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes["primary"].Err)
	assert.Equal(t, 1, outcomes["primary"].Result.Created)
	assert.NoError(t, outcomes["secondary"].Err)
	assert.Equal(t, 0, outcomes["secondary"].Result.Processed())
}

func TestRunAllContainsPanickingScope(t *testing.T) {
	o := newOrchestrator(panickingSource{}, nil, &memoryStore{})

	outcomes := o.RunAll(context.Background(), []string{"primary"}, 100, 7)
	require.Len(t, outcomes, 1)
	require.Error(t, outcomes["primary"].Err)
	assert.Contains(t, outcomes["primary"].Err.Error(), "panicked")
}
