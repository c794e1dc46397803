package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceExtractor(t *testing.T) {
	e := NewReferenceExtractor()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "ref label with colon", text: "debited on 12-Jan, Ref: UTR1234567890", expected: "UTR1234567890"},
		{name: "ref label with space", text: "credited to your account, Ref RRN987654", expected: "RRN987654"},
		{name: "utr label", text: "payment done. UTR: 509912345678", expected: "509912345678"},
		{name: "rrn label", text: "UPI txn successful RRN 426712349876", expected: "426712349876"},
		{name: "txn id label", text: "Txn ID: T2601120930412345", expected: "T2601120930412345"},
		{name: "transaction id label", text: "Transaction ID #AXIS-99881", expected: "AXIS-99881"},
		{name: "reference number label", text: "Reference number 000123456789", expected: "000123456789"},
		{name: "bare utr token", text: "payment via UTR509912345678 completed", expected: "UTR509912345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := e.Extract(tt.text)
			require.NotEmpty(t, candidates)
			assert.Equal(t, tt.expected, candidates[0].Value)
		})
	}
}

func TestReferenceExtractorNoMatch(t *testing.T) {
	e := NewReferenceExtractor()

	tests := []struct {
		name string
		text string
	}{
		// "refund" must never be read as "ref" plus a value.
		{name: "refund is not a label", text: "Your refund has been processed"},
		{name: "refunded is not a label", text: "Rs.250 refunded to your card"},
		{name: "no reference", text: "Rs.100 debited from your account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, e.Extract(tt.text))
		})
	}
}
