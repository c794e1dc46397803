// Package parse contains the command that parses a single alert text and
// prints the extracted fields, for debugging extraction rules.
package parse

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"paisa/alert-ingest/cmd/root"
	"paisa/alert-ingest/internal/alertparser"
	"paisa/alert-ingest/internal/dateutils"
	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
	"paisa/alert-ingest/internal/parsererror"
)

var (
	fileFlag       string
	receivedAtFlag string
)

// Cmd is the parse command.
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one alert text and print the extracted fields",
	Long: `Runs the rule-based alert parser over a single alert text, read from a file
or stdin, and prints the extracted amount, direction, merchant, account and
reference. The LLM fallback is never invoked: this command shows exactly what
the deterministic rules see.`,
	RunE: runParse,
}

func init() {
	Cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "File containing the alert text (defaults to stdin)")
	Cmd.Flags().StringVar(&receivedAtFlag, "received-at", "", "Alert timestamp (e.g. 2026-01-12); defaults to now")
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := readAlertText()
	if err != nil {
		return err
	}

	receivedAt := time.Now()
	if receivedAtFlag != "" {
		receivedAt, err = dateutils.ParseDate(receivedAtFlag)
		if err != nil {
			return err
		}
	}

	parser := alertparser.New(logging.NewLogrusAdapterFromLogger(root.Log))
	parsed, err := parser.Parse(models.RawAlert{
		Text:       text,
		Kind:       models.SourceManual,
		SourceID:   "cli",
		ReceivedAt: receivedAt,
	})
	if err != nil {
		if pf, ok := parsererror.AsParseFailure(err); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "parse failure: %s\n", pf.Reason)
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Amount:    %s\n", parsed.Amount.StringFixed(2))
	fmt.Fprintf(out, "Direction: %s\n", parsed.Direction)
	fmt.Fprintf(out, "Merchant:  %s\n", parsed.Merchant)
	fmt.Fprintf(out, "Account:   %s\n", parsed.AccountSuffix)
	fmt.Fprintf(out, "Reference: %s\n", parsed.Reference)
	if parsed.LowConfidence {
		fmt.Fprintln(out, "(low confidence: both debit and credit keywords matched)")
	}
	return nil
}

func readAlertText() (string, error) {
	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", fmt.Errorf("reading alert file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading alert text from stdin: %w", err)
	}
	return string(data), nil
}
