package ingest

import (
	"context"
	"fmt"

	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
)

// ScopeOutcome is the per-account-scope result of a multi-scope run.
type ScopeOutcome struct {
	Result models.IngestionResult
	Err    error
}

// RunAll executes one independent run per account scope. A failing scope
// (e.g. a misconfigured secondary account) is reported in its outcome and
// never prevents the remaining scopes from running.
func (o *Orchestrator) RunAll(ctx context.Context, scopes []string, maxResults, daysBack int) map[string]ScopeOutcome {
	outcomes := make(map[string]ScopeOutcome, len(scopes))
	for _, scope := range scopes {
		result, err := o.runScope(ctx, scope, maxResults, daysBack)
		if err != nil {
			o.log.WithError(err).WithField(logging.FieldScope, scope).
				Error("Ingestion run failed for scope")
		}
		outcomes[scope] = ScopeOutcome{Result: result, Err: err}
	}
	return outcomes
}

// runScope wraps Run so that a panicking collaborator is contained within its
// scope's outcome.
func (o *Orchestrator) runScope(ctx context.Context, scope string, maxResults, daysBack int) (result models.IngestionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ingestion run for scope %q panicked: %v", scope, r)
		}
	}()
	return o.Run(ctx, scope, maxResults, daysBack)
}
