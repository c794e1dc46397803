package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paisa/alert-ingest/internal/config"
	"paisa/alert-ingest/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	cfg.Ingest.Scopes = []string{"primary"}
	cfg.Ingest.MaxResults = 100
	cfg.Ingest.DaysBack = 7
	cfg.Ingest.UnknownDirection = "fail"
	cfg.Ingest.AlertsDir = filepath.Join(dir, "alerts")
	cfg.Dedup.WindowHours = 72
	cfg.Dedup.LookbackDays = 90
	cfg.AI.Model = "gemini-2.0-flash"
	cfg.AI.TimeoutSeconds = 30
	cfg.Store.Path = filepath.Join(dir, "transactions.db")
	return cfg
}

func TestNewContainerWiresComponents(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Logger())
	assert.NotNil(t, c.Store())
	assert.NotNil(t, c.Parser())
	assert.NotNil(t, c.Resolver())
	assert.NotNil(t, c.Orchestrator())
}

func TestNewContainerNilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewContainerMalformedRulesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rules.File = filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(cfg.Rules.File, []byte("debit_keywords: {broken"), 0o600))

	_, err := NewContainer(context.Background(), cfg)
	assert.Error(t, err)
}

func TestContainerEndToEndIngestion(t *testing.T) {
	cfg := testConfig(t)
	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	scopeDir := filepath.Join(cfg.Ingest.AlertsDir, "primary")
	require.NoError(t, os.MkdirAll(scopeDir, 0o755))
	alert := "Rs.1,250.00 debited from A/c XX1234 to Amazon Pay on 12-Jan, Ref: UTR1234567890"
	require.NoError(t, os.WriteFile(filepath.Join(scopeDir, "alert.txt"), []byte(alert), 0o644))

	result, err := c.Orchestrator().Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Created: 1}, result)

	// Running again over the same file is a no-op.
	result, err = c.Orchestrator().Run(context.Background(), "primary", 100, 7)
	require.NoError(t, err)
	assert.Equal(t, models.IngestionResult{Skipped: 1}, result)

	txs, err := c.Store().ListByScope(context.Background(), "primary")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "1250.00", txs[0].Amount.StringFixed(2))
	assert.Equal(t, models.DirectionDebit, txs[0].Direction)
	assert.Equal(t, "Amazon Pay", txs[0].Merchant)
	assert.Equal(t, "UTR1234567890", txs[0].Reference)
	assert.Equal(t, "1234", txs[0].AccountSuffix)
}
