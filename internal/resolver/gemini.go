package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
	"paisa/alert-ingest/internal/parsererror"
)

// GeminiClient implements AIClient against the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    logging.Logger
}

// NewGeminiClient creates a Gemini-backed field extractor. A missing API key
// is reported as BackendUnavailableError so callers treat it as "fallback
// unavailable" rather than a crash.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if apiKey == "" {
		return nil, &parsererror.BackendUnavailableError{
			Backend: "gemini",
			Err:     fmt.Errorf("GEMINI_API_KEY not set"),
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &parsererror.BackendUnavailableError{Backend: "gemini", Err: err}
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    logger,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// ExtractFields implements AIClient.
func (c *GeminiClient) ExtractFields(ctx context.Context, text string) (*models.ParsedAlert, error) {
	prompt := fmt.Sprintf(`Extract the transaction fields from the following bank alert text:

%s

Respond with exactly these lines, leaving a value empty when the alert does not contain it:
Amount: [numeric amount without currency symbol or thousands separators]
Direction: [debit or credit]
Merchant: [counterparty or merchant name]
Reference: [bank reference number such as RRN or UTR]
Account: [last 3-4 digits of the account or card]`, text)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	parsed, err := parseFieldResponse(responseText)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(
		logging.Field{Key: logging.FieldBackend, Value: "gemini"},
		logging.Field{Key: logging.FieldAmount, Value: parsed.Amount.StringFixed(2)},
		logging.Field{Key: logging.FieldDirection, Value: parsed.Direction},
	).Debug("Gemini extracted alert fields")
	return parsed, nil
}

// parseFieldResponse reads the "Key: value" lines of the model response into
// a ParsedAlert. A response without a positive amount is an error, never a
// fabricated record.
func parseFieldResponse(response string) (*models.ParsedAlert, error) {
	parsed := &models.ParsedAlert{Direction: models.DirectionUnknown}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), "[]")
		if value == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "amount":
			parsed.Amount = models.ParseAmount(value)
		case "direction":
			parsed.Direction = models.ParseDirection(value)
		case "merchant":
			parsed.Merchant = value
		case "reference":
			parsed.Reference = value
		case "account":
			parsed.AccountSuffix = value
		}
	}

	if !parsed.Amount.IsPositive() {
		return nil, fmt.Errorf("gemini response contained no usable amount")
	}
	parsed.Amount = parsed.Amount.Round(2)
	return parsed, nil
}
