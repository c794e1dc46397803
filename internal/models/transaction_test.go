package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
	}{
		{input: "debit", expected: DirectionDebit},
		{input: "DEBIT", expected: DirectionDebit},
		{input: "dr", expected: DirectionDebit},
		{input: "dbit", expected: DirectionDebit},
		{input: "credit", expected: DirectionCredit},
		{input: " Credit ", expected: DirectionCredit},
		{input: "cr", expected: DirectionCredit},
		{input: "crdt", expected: DirectionCredit},
		{input: "unknown", expected: DirectionUnknown},
		{input: "", expected: DirectionUnknown},
		{input: "sideways", expected: DirectionUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseDirection(tt.input), "input %q", tt.input)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "1250.00", expected: "1250.00"},
		{input: "Rs.1,250.00", expected: "1250.00"},
		{input: "INR 500", expected: "500.00"},
		{input: "₹99.50", expected: "99.50"},
		{input: "rs 42", expected: "42.00"},
		{input: "not a number", expected: "0.00"},
		{input: "", expected: "0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseAmount(tt.input).StringFixed(2), "input %q", tt.input)
	}
}

func TestTransactionDirectionHelpers(t *testing.T) {
	debit := &Transaction{Direction: DirectionDebit}
	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())

	credit := &Transaction{Direction: DirectionCredit}
	assert.True(t, credit.IsCredit())
	assert.False(t, credit.IsDebit())

	unknown := &Transaction{Direction: DirectionUnknown}
	assert.False(t, unknown.IsDebit())
	assert.False(t, unknown.IsCredit())
}

func TestIngestionResultProcessed(t *testing.T) {
	r := IngestionResult{Created: 3, Skipped: 2, Failed: 1}
	assert.Equal(t, 6, r.Processed())
	assert.Equal(t, 0, IngestionResult{}.Processed())
}
