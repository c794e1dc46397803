// Package ingest contains the command that runs one ingestion pass over all
// configured account scopes.
package ingest

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"paisa/alert-ingest/cmd/root"
	"paisa/alert-ingest/internal/container"
)

var (
	scopeFlag      string
	maxResultsFlag int
	daysBackFlag   int
)

// Cmd is the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion pass over recent alert messages",
	Long: `Pulls recent alert messages for each configured account scope, extracts
transaction fields, and stores every non-duplicate transaction. A failing
scope is reported without aborting the others; the command always ends with a
per-scope created/skipped/failed summary.`,
	RunE: runIngest,
}

func init() {
	Cmd.Flags().StringVarP(&scopeFlag, "scope", "s", "", "Ingest a single account scope instead of all configured scopes")
	Cmd.Flags().IntVar(&maxResultsFlag, "max-results", 0, "Maximum number of messages per scope (default from config)")
	Cmd.Flags().IntVar(&daysBackFlag, "days-back", 0, "Recency window in days (default from config)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := root.Cfg

	c, err := container.NewContainer(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	scopes := cfg.Ingest.Scopes
	if scopeFlag != "" {
		scopes = []string{scopeFlag}
	}
	maxResults := cfg.Ingest.MaxResults
	if maxResultsFlag > 0 {
		maxResults = maxResultsFlag
	}
	daysBack := cfg.Ingest.DaysBack
	if daysBackFlag > 0 {
		daysBack = daysBackFlag
	}

	outcomes := c.Orchestrator().RunAll(cmd.Context(), scopes, maxResults, daysBack)

	failedScopes := 0
	for scope, outcome := range outcomes {
		entry := root.Log.WithFields(logrus.Fields{
			"scope":   scope,
			"created": outcome.Result.Created,
			"skipped": outcome.Result.Skipped,
			"failed":  outcome.Result.Failed,
		})
		if outcome.Err != nil {
			failedScopes++
			entry.WithError(outcome.Err).Error("Scope ingestion failed")
			continue
		}
		entry.Info("Scope ingestion complete")
	}

	if failedScopes == len(scopes) {
		return fmt.Errorf("ingestion failed for all %d scope(s)", len(scopes))
	}
	return nil
}
