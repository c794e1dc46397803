package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsParseFailure(t *testing.T) {
	pf := NewParseFailure(ReasonNoAmountMatch, "some alert text")

	got, ok := AsParseFailure(pf)
	require.True(t, ok)
	assert.Equal(t, ReasonNoAmountMatch, got.Reason)
	assert.Equal(t, "some alert text", got.Text)

	// Wrapped failures unwrap too.
	wrapped := fmt.Errorf("processing message: %w", pf)
	got, ok = AsParseFailure(wrapped)
	require.True(t, ok)
	assert.Equal(t, ReasonNoAmountMatch, got.Reason)

	_, ok = AsParseFailure(errors.New("plain error"))
	assert.False(t, ok)
}

func TestBackendUnavailableErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &BackendUnavailableError{Backend: "gemini", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gemini")
}

func TestSourceFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("auth expired")
	err := &SourceFetchError{Scope: "secondary", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "secondary")
}
