package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountExtractor(t *testing.T) {
	e := NewAccountExtractor()

	tests := []struct {
		name     string
		text     string
		expected string
		rule     string
	}{
		{name: "a/c with mask", text: "Rs.1,250.00 debited from A/c XX1234", expected: "1234", rule: "labeled"},
		{name: "account ending in", text: "spent on card ending in 5678", expected: "5678", rule: "labeled"},
		{name: "acct no", text: "Acct no. 9876 credited with INR 500", expected: "9876", rule: "labeled"},
		{name: "account number colon", text: "Account: 4321", expected: "4321", rule: "labeled"},
		{name: "card label", text: "Your card 0099 was used", expected: "0099", rule: "labeled"},
		{name: "bare star mask", text: "debited from **3456 today", expected: "3456", rule: "masked"},
		{name: "bare x mask", text: "transfer from xx782 done", expected: "782", rule: "masked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := e.Extract(tt.text)
			require.NotEmpty(t, candidates)
			assert.Equal(t, tt.expected, candidates[0].Value)
			assert.Equal(t, tt.rule, candidates[0].Rule)
		})
	}
}

func TestAccountExtractorNoMatch(t *testing.T) {
	e := NewAccountExtractor()

	tests := []struct {
		name string
		text string
	}{
		{name: "no account mention", text: "Rs.500 received via UPI"},
		{name: "too few digits", text: "A/c XX12 debited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, e.Extract(tt.text))
		})
	}
}
