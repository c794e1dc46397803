package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paisa/alert-ingest/internal/logging"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "rules.yaml"), &logging.MockLogger{})

	rules, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, rules.DebitKeywords)
	assert.Empty(t, rules.CreditKeywords)
	assert.Empty(t, rules.MerchantNoise)
}

func TestLoadEmptyPath(t *testing.T) {
	s := NewStore("", &logging.MockLogger{})
	rules, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, rules.DebitKeywords)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
debit_keywords:
  - debited
  - transferred out
credit_keywords:
  - credited
merchant_noise:
  - beneficiary
`), 0o600))

	s := NewStore(path, &logging.MockLogger{})
	rules, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"debited", "transferred out"}, rules.DebitKeywords)
	assert.Equal(t, []string{"credited"}, rules.CreditKeywords)
	assert.Equal(t, []string{"beneficiary"}, rules.MerchantNoise)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debit_keywords: {broken"), 0o600))

	s := NewStore(path, &logging.MockLogger{})
	_, err := s.Load()
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	s := NewStore(path, &logging.MockLogger{})

	in := Rules{
		DebitKeywords: []string{"debited"},
		MerchantNoise: []string{"upi"},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveWithoutPath(t *testing.T) {
	s := NewStore("", &logging.MockLogger{})
	assert.Error(t, s.Save(Rules{}))
}
