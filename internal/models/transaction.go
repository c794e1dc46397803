package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction represents the direction of a transaction.
type Direction string

const (
	DirectionDebit   Direction = "debit"
	DirectionCredit  Direction = "credit"
	DirectionUnknown Direction = "unknown"
)

// ParseDirection maps a free-form direction string to a Direction.
// Anything unrecognized maps to DirectionUnknown.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit", "dbit", "dr":
		return DirectionDebit
	case "credit", "crdt", "cr":
		return DirectionCredit
	default:
		return DirectionUnknown
	}
}

// TransactionSource records which ingestion path created a transaction.
type TransactionSource string

const (
	SourceStatementExtraction TransactionSource = "statement_extraction"
	SourceEmailIngestion      TransactionSource = "email_ingestion"
	SourceManualEntry         TransactionSource = "manual_entry"
)

// Transaction is the canonical stored transaction record.
// The ingestion pipeline only ever sets safe defaults for the bookkeeping
// fields (category, group, split, soft delete); those belong to user-facing
// edit flows.
type Transaction struct {
	ID            string            `csv:"ID"`
	Scope         string            `csv:"Scope"`
	Amount        decimal.Decimal   `csv:"Amount"`
	Direction     Direction         `csv:"Direction"`
	AccountSuffix string            `csv:"AccountSuffix"`
	Reference     string            `csv:"Reference"`
	Merchant      string            `csv:"Merchant"`
	// UserDescription is user-editable and never overwritten by re-ingestion.
	UserDescription string            `csv:"UserDescription"`
	Source          TransactionSource `csv:"Source"`

	CategoryID string `csv:"-"`
	GroupID    string `csv:"-"`
	IsSplit    bool   `csv:"-"`

	IsDeleted bool       `csv:"-"`
	DeletedAt *time.Time `csv:"-"`

	// OccurredAt is the source timestamp of the alert the transaction was
	// extracted from, used by the deduplication window.
	OccurredAt time.Time `csv:"OccurredAt"`
	CreatedAt  time.Time `csv:"CreatedAt"`
	UpdatedAt  time.Time `csv:"-"`
}

// IsDebit returns true if the transaction is a debit (outgoing money).
func (t *Transaction) IsDebit() bool {
	return t.Direction == DirectionDebit
}

// IsCredit returns true if the transaction is a credit (incoming money).
func (t *Transaction) IsCredit() bool {
	return t.Direction == DirectionCredit
}

// ParseAmount converts a raw amount string to a decimal, stripping currency
// markers and thousands separators. Returns decimal.Zero when the string is
// not numeric.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	for _, marker := range []string{"Rs.", "Rs", "INR", "₹", "rs.", "rs", "inr"} {
		amount = strings.ReplaceAll(amount, marker, "")
	}
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, " ", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
