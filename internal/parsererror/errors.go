// Package parsererror defines the error taxonomy of the ingestion pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// FailureReason classifies why an alert text could not be parsed.
type FailureReason string

const (
	// ReasonNoAmountMatch means no amount pattern matched anywhere in the text.
	ReasonNoAmountMatch FailureReason = "no_amount_match"
	// ReasonAmbiguousDirection means both debit and credit keywords matched
	// and no policy resolved the ambiguity.
	ReasonAmbiguousDirection FailureReason = "ambiguous_direction"
	// ReasonUnparseable covers texts that matched an amount pattern but still
	// could not be turned into a usable record.
	ReasonUnparseable FailureReason = "unparseable"
)

// ParseFailure is the recoverable outcome of parsing an alert whose text does
// not yield a usable transaction. It carries the original text for audit.
type ParseFailure struct {
	Reason FailureReason
	Text   string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("alert parse failed: %s", e.Reason)
}

// NewParseFailure creates a ParseFailure for the given reason and raw text.
func NewParseFailure(reason FailureReason, text string) *ParseFailure {
	return &ParseFailure{Reason: reason, Text: text}
}

// AsParseFailure unwraps err to a *ParseFailure if it is one.
func AsParseFailure(err error) (*ParseFailure, bool) {
	var pf *ParseFailure
	if errors.As(err, &pf) {
		return pf, true
	}
	return nil, false
}

// BackendUnavailableError indicates the fallback extraction backend could not
// be reached or is not configured. It is recoverable: the caller skips the
// fallback, it never aborts a run.
type BackendUnavailableError struct {
	Backend string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("extraction backend %s unavailable: %v", e.Backend, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}

// SourceFetchError indicates the message source (or OCR backend) for one
// account scope could not be reached. It fails that scope's run without
// affecting sibling scopes.
type SourceFetchError struct {
	Scope string
	Err   error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetching alerts for scope %q failed: %v", e.Scope, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}
