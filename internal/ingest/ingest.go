// Package ingest drives one ingestion run: it pulls candidate messages from
// the message source and pushes each through parse, normalize, dedup and
// storage, accumulating created/skipped/failed counts.
package ingest

import (
	"context"

	"paisa/alert-ingest/internal/dedup"
	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
	"paisa/alert-ingest/internal/parsererror"
)

// Orchestrator wires the pipeline stages for ingestion runs.
type Orchestrator struct {
	source     MessageSource
	ocr        OCRBackend // nil when image alerts are not expected
	resolver   FieldResolver
	normalizer Normalizer
	store      TransactionStore
	gate       dedup.Gate
	log        logging.Logger
}

// Normalizer is the normalization stage as the orchestrator sees it.
type Normalizer interface {
	Normalize(parsed *models.ParsedAlert, source models.TransactionSource, scope string) (*models.Transaction, error)
}

// New creates an Orchestrator.
func New(
	source MessageSource,
	ocr OCRBackend,
	resolver FieldResolver,
	normalizer Normalizer,
	store TransactionStore,
	gate dedup.Gate,
	logger logging.Logger,
) *Orchestrator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Orchestrator{
		source:     source,
		ocr:        ocr,
		resolver:   resolver,
		normalizer: normalizer,
		store:      store,
		gate:       gate,
		log:        logger,
	}
}

// Run ingests recent alerts for one account scope. Messages are processed in
// source order and in isolation: one failed message never aborts the rest.
// The returned error is non-nil only when the message source itself could not
// be reached.
func (o *Orchestrator) Run(ctx context.Context, scope string, maxResults, daysBack int) (models.IngestionResult, error) {
	var result models.IngestionResult

	messages, err := o.source.ListRecentAlerts(ctx, scope, maxResults, daysBack)
	if err != nil {
		return result, &parsererror.SourceFetchError{Scope: scope, Err: err}
	}

	log := o.log.WithField(logging.FieldScope, scope)
	log.Info("Starting ingestion run", logging.Field{Key: logging.FieldCount, Value: len(messages)})

	// Duplicates introduced earlier in this run must be caught too, so the
	// seen set grows as transactions are confirmed created.
	var seen []*models.Transaction

	for _, msg := range messages {
		tx, outcome := o.processMessage(ctx, scope, msg, seen)
		switch outcome {
		case outcomeCreated:
			result.Created++
			seen = append(seen, tx)
		case outcomeSkipped:
			result.Skipped++
		case outcomeFailed:
			result.Failed++
		}
	}

	log.Info("Ingestion run complete",
		logging.Field{Key: "created", Value: result.Created},
		logging.Field{Key: "skipped", Value: result.Skipped},
		logging.Field{Key: "failed", Value: result.Failed},
	)
	return result, nil
}

type outcome int

const (
	outcomeCreated outcome = iota
	outcomeSkipped
	outcomeFailed
)

// processMessage takes one message through the full pipeline. It returns the
// created transaction only on outcomeCreated.
func (o *Orchestrator) processMessage(ctx context.Context, scope string, msg Message, seen []*models.Transaction) (*models.Transaction, outcome) {
	log := o.log.WithFields(
		logging.Field{Key: logging.FieldScope, Value: scope},
		logging.Field{Key: logging.FieldSourceID, Value: msg.ID},
	)

	raw, ok := o.rawAlert(ctx, scope, msg)
	if !ok {
		log.Warn("Message yielded no alert text")
		return nil, outcomeFailed
	}

	parsed, err := o.resolver.Resolve(ctx, raw)
	if err != nil {
		if pf, isPF := parsererror.AsParseFailure(err); isPF {
			log.WithField(logging.FieldReason, string(pf.Reason)).Info("Alert not parseable")
		} else {
			log.WithError(err).Warn("Alert resolution failed")
		}
		return nil, outcomeFailed
	}

	tx, err := o.normalizer.Normalize(parsed, models.SourceEmailIngestion, scope)
	if err != nil {
		log.WithError(err).Info("Alert could not be normalized")
		return nil, outcomeFailed
	}

	existing, err := o.candidateDuplicates(ctx, tx)
	if err != nil {
		log.WithError(err).Warn("Duplicate lookup failed")
		return nil, outcomeFailed
	}
	existing = append(existing, seen...)

	if o.gate.IsDuplicate(tx, existing) {
		log.Debug("Duplicate alert suppressed")
		return nil, outcomeSkipped
	}

	if err := o.store.CreateTransaction(ctx, tx); err != nil {
		log.WithError(err).Error("Storing transaction failed")
		return nil, outcomeFailed
	}

	log.Info("Transaction created",
		logging.Field{Key: logging.FieldAmount, Value: tx.Amount.StringFixed(2)},
		logging.Field{Key: logging.FieldDirection, Value: string(tx.Direction)},
	)
	return tx, outcomeCreated
}

// rawAlert derives the alert text for a message: its body when present,
// otherwise OCR over its attachments. The orchestrator never OCRs itself;
// image bytes go to the OCR backend and the text re-enters the same path.
func (o *Orchestrator) rawAlert(ctx context.Context, scope string, msg Message) (models.RawAlert, bool) {
	if msg.Body != "" {
		return models.RawAlert{
			Text:       msg.Body,
			Kind:       models.SourceEmail,
			SourceID:   msg.ID,
			ReceivedAt: msg.ReceivedAt,
			Scope:      scope,
		}, true
	}

	if o.ocr == nil {
		return models.RawAlert{}, false
	}
	for _, img := range msg.Attachments {
		text, err := o.ocr.ImageToText(ctx, img)
		if err != nil {
			o.log.WithError(err).WithField(logging.FieldSourceID, msg.ID).
				Warn("OCR failed for attachment")
			continue
		}
		if text != "" {
			return models.RawAlert{
				Text:       text,
				Kind:       models.SourceOCRImage,
				SourceID:   msg.ID,
				ReceivedAt: msg.ReceivedAt,
				Scope:      scope,
			}, true
		}
	}
	return models.RawAlert{}, false
}

// candidateDuplicates asks storage for the bounded recent set of transactions
// the gate should compare against.
func (o *Orchestrator) candidateDuplicates(ctx context.Context, tx *models.Transaction) ([]*models.Transaction, error) {
	from, to := o.gate.LookbackBounds(tx.OccurredAt)
	return o.store.FindCandidateDuplicates(ctx, tx.Scope, tx.Amount, tx.Direction, from, to)
}
