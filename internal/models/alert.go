// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind identifies where an alert's raw text came from.
type SourceKind string

const (
	// SourceEmail indicates the text is the body of a bank notification email.
	SourceEmail SourceKind = "email"
	// SourceOCRImage indicates the text was produced by OCR over a scanned image.
	SourceOCRImage SourceKind = "ocr_image"
	// SourceManual indicates the text was entered by hand.
	SourceManual SourceKind = "manual"
)

// RawAlert is one unstructured financial-alert text plus its source metadata.
// It is created per message by the message source and consumed once by the
// alert parser.
type RawAlert struct {
	Text       string
	Kind       SourceKind
	SourceID   string
	ReceivedAt time.Time
	Scope      string // account scope, e.g. "primary" or "secondary"
}

// FieldKind identifies which transaction field an extractor produces.
type FieldKind string

const (
	FieldAmount    FieldKind = "amount"
	FieldDirection FieldKind = "direction"
	FieldReference FieldKind = "reference"
	FieldAccount   FieldKind = "account"
	FieldMerchant  FieldKind = "merchant"
)

// FieldCandidate is a single value extracted by one field extractor.
// Rank is the position of the producing pattern in its extractor's priority
// list; lower rank wins when a parser resolves the field.
type FieldCandidate struct {
	Kind  FieldKind
	Raw   string // the matched substring as it appeared in the text
	Value string // normalized value
	Rule  string // identity of the pattern that produced the match
	Rank  int
}

// ParsedAlert holds at most one resolved value per field kind.
// Amount is always set; an alert without a parseable amount never becomes a
// ParsedAlert (the parser reports a failure instead).
type ParsedAlert struct {
	Amount        decimal.Decimal
	Direction     Direction
	Reference     string // optional
	AccountSuffix string // optional, 3-4 digits
	Merchant      string // optional, normalized

	// LowConfidence is set when both debit and credit keywords matched,
	// so downstream code may route the alert to the fallback extractor.
	LowConfidence bool
	// UsedFallback is set by the resolver when the LLM backend contributed
	// to this result. Callers use it for cost tracking.
	UsedFallback bool

	Raw RawAlert
}
