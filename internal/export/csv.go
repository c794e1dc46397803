// Package export writes stored transactions to CSV for downstream analytics.
package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
)

// WriteTransactionsToCSV writes transactions to a CSV file in a standardized
// format.
func WriteTransactionsToCSV(transactions []*models.Transaction, csvFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	logger.WithFields(
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Info("Writing transactions to CSV file")

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close CSV file")
		}
	}()

	if err := gocsv.MarshalFile(&transactions, file); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
