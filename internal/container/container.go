// Package container provides dependency injection for the alert-ingest
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"paisa/alert-ingest/internal/alertparser"
	"paisa/alert-ingest/internal/config"
	"paisa/alert-ingest/internal/dedup"
	"paisa/alert-ingest/internal/extract"
	"paisa/alert-ingest/internal/filesource"
	"paisa/alert-ingest/internal/ingest"
	"paisa/alert-ingest/internal/logging"
	"paisa/alert-ingest/internal/models"
	"paisa/alert-ingest/internal/normalizer"
	"paisa/alert-ingest/internal/resolver"
	"paisa/alert-ingest/internal/rules"
	"paisa/alert-ingest/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getters only.
type Container struct {
	logger       logging.Logger
	config       *config.Config
	store        *store.TransactionStore
	parser       *alertparser.Parser
	resolver     *resolver.Resolver
	orchestrator *ingest.Orchestrator
	gemini       *resolver.GeminiClient // nil when AI is disabled
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	txStore, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening transaction store: %w", err)
	}

	ruleSet, err := rules.NewStore(cfg.Rules.File, logger).Load()
	if err != nil {
		_ = txStore.Close()
		return nil, fmt.Errorf("loading extraction rules: %w", err)
	}

	parser := alertparser.NewWithExtractors(
		extract.NewAmountExtractor(),
		extract.NewDirectionExtractorWithKeywords(ruleSet.DebitKeywords, ruleSet.CreditKeywords),
		extract.NewReferenceExtractor(),
		extract.NewAccountExtractor(),
		extract.NewMerchantExtractorWithNoise(ruleSet.MerchantNoise),
		logger,
	)

	// A missing key with AI enabled is rejected by config validation, so a
	// construction failure here is a hard error rather than a silent skip.
	var gemini *resolver.GeminiClient
	var aiClient resolver.AIClient
	if cfg.AI.Enabled {
		gemini, err = resolver.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			_ = txStore.Close()
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		aiClient = gemini
	}

	fieldResolver := resolver.New(parser, aiClient, time.Duration(cfg.AI.TimeoutSeconds)*time.Second, logger)

	var norm *normalizer.Normalizer
	if d := models.ParseDirection(cfg.Ingest.UnknownDirection); d != models.DirectionUnknown {
		norm = normalizer.New(normalizer.WithDefaultDirection(d))
	} else {
		norm = normalizer.New()
	}

	gate := dedup.New(
		models.Window{Tolerance: time.Duration(cfg.Dedup.WindowHours) * time.Hour},
		time.Duration(cfg.Dedup.LookbackDays)*24*time.Hour,
	)

	source := filesource.New(cfg.Ingest.AlertsDir, logger)
	orchestrator := ingest.New(source, nil, fieldResolver, norm, txStore, gate, logger)

	return &Container{
		logger:       logger,
		config:       cfg,
		store:        txStore,
		parser:       parser,
		resolver:     fieldResolver,
		orchestrator: orchestrator,
		gemini:       gemini,
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() error {
	if c.gemini != nil {
		_ = c.gemini.Close()
	}
	return c.store.Close()
}

// Logger returns the application logger.
func (c *Container) Logger() logging.Logger { return c.logger }

// Config returns the application configuration.
func (c *Container) Config() *config.Config { return c.config }

// Store returns the transaction store.
func (c *Container) Store() *store.TransactionStore { return c.store }

// Parser returns the rule-based alert parser.
func (c *Container) Parser() *alertparser.Parser { return c.parser }

// Resolver returns the extraction backend selector.
func (c *Container) Resolver() *resolver.Resolver { return c.resolver }

// Orchestrator returns the ingestion orchestrator.
func (c *Container) Orchestrator() *ingest.Orchestrator { return c.orchestrator }
