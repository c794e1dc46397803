// Package export contains the command that dumps stored transactions to CSV.
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"paisa/alert-ingest/cmd/root"
	"paisa/alert-ingest/internal/container"
	"paisa/alert-ingest/internal/export"
	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
)

var (
	scopeFlag  string
	outputFlag string
)

// Cmd is the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transactions to a CSV file",
	RunE:  runExport,
}

func init() {
	Cmd.Flags().StringVarP(&scopeFlag, "scope", "s", "", "Export a single account scope instead of all configured scopes")
	Cmd.Flags().StringVarP(&outputFlag, "output", "o", "transactions.csv", "Output CSV file")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	var transactions []*models.Transaction
	for _, scope := range scopes {
		txs, err := c.Store().ListByScope(cmd.Context(), scope)
		if err != nil {
			return fmt.Errorf("listing transactions for scope %q: %w", scope, err)
		}
		transactions = append(transactions, txs...)
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	if err := export.WriteTransactionsToCSV(transactions, outputFlag, c.Logger()); err != nil {
		return err
	}
	c.Logger().Info("Export complete",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "file", Value: outputFlag},
	)
	return nil
}
