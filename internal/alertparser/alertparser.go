// Package alertparser turns one raw alert text into a ParsedAlert by running
// every field extractor and applying the extractor precedence rules.
package alertparser

import (
	"paisa/alert-ingest/internal/extract"
	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
	"paisa/alert-ingest/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Parser orchestrates the field extractors over a single alert text.
// Fields are resolved independently of one another: each field comes from its
// own pattern set, never from positional correlation with other fields.
type Parser struct {
	amount    *extract.AmountExtractor
	direction *extract.DirectionExtractor
	reference *extract.ReferenceExtractor
	account   *extract.AccountExtractor
	merchant  *extract.MerchantExtractor
	log       logging.Logger
}

// New creates a Parser with the default extractors.
func New(logger logging.Logger) *Parser {
	return NewWithExtractors(
		extract.NewAmountExtractor(),
		extract.NewDirectionExtractor(),
		extract.NewReferenceExtractor(),
		extract.NewAccountExtractor(),
		extract.NewMerchantExtractor(),
		logger,
	)
}

// NewWithExtractors creates a Parser from explicitly constructed extractors,
// e.g. with keyword sets loaded from the rules file.
func NewWithExtractors(
	amount *extract.AmountExtractor,
	direction *extract.DirectionExtractor,
	reference *extract.ReferenceExtractor,
	account *extract.AccountExtractor,
	merchant *extract.MerchantExtractor,
	logger logging.Logger,
) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{
		amount:    amount,
		direction: direction,
		reference: reference,
		account:   account,
		merchant:  merchant,
		log:       logger,
	}
}

// Parse extracts all fields from the alert. Amount is mandatory: without an
// amount candidate the alert is a ParseFailure(no_amount_match). An ambiguous
// direction still yields a ParsedAlert, with Direction unknown and
// LowConfidence set so callers may route to the fallback extractor.
func (p *Parser) Parse(raw models.RawAlert) (*models.ParsedAlert, error) {
	amountCands := p.amount.Extract(raw.Text)
	if len(amountCands) == 0 {
		p.log.WithFields(
			logging.Field{Key: logging.FieldSourceID, Value: raw.SourceID},
			logging.Field{Key: logging.FieldReason, Value: parsererror.ReasonNoAmountMatch},
		).Debug("Alert has no parseable amount")
		return nil, parsererror.NewParseFailure(parsererror.ReasonNoAmountMatch, raw.Text)
	}
	amount, err := decimal.NewFromString(amountCands[0].Value)
	if err != nil {
		return nil, parsererror.NewParseFailure(parsererror.ReasonUnparseable, raw.Text)
	}

	parsed := &models.ParsedAlert{
		Amount:    amount,
		Direction: models.DirectionUnknown,
		Raw:       raw,
	}

	if cands := p.direction.Extract(raw.Text); len(cands) > 0 {
		parsed.Direction = models.ParseDirection(cands[0].Value)
		if cands[0].Rule == extract.RuleAmbiguousDirection {
			// Both keyword sets matched. Never silently pick a side.
			parsed.LowConfidence = true
		}
	}
	if cands := p.reference.Extract(raw.Text); len(cands) > 0 {
		parsed.Reference = cands[0].Value
	}
	if cands := p.account.Extract(raw.Text); len(cands) > 0 {
		parsed.AccountSuffix = cands[0].Value
	}
	if cands := p.merchant.Extract(raw.Text); len(cands) > 0 {
		parsed.Merchant = cands[0].Value
	}

	return parsed, nil
}
