// Package rules loads the extraction rule overrides (direction keyword sets,
// merchant noise words) from a YAML file. Compiled-in defaults apply when the
// file is absent, so a missing rules file is never an error.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"paisa/alert-ingest/internal/logging"
)

// Rules holds the loadable extraction rule overrides.
type Rules struct {
	DebitKeywords  []string `yaml:"debit_keywords"`
	CreditKeywords []string `yaml:"credit_keywords"`
	MerchantNoise  []string `yaml:"merchant_noise"`
}

// Store loads and saves the rules file.
type Store struct {
	path string
	log  logging.Logger
}

// NewStore creates a rules store for the given file path. An empty path means
// "defaults only".
func NewStore(path string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{path: path, log: logger}
}

// Load reads the rules file. A missing or empty path yields zero-value Rules
// (callers fall back to compiled defaults); a malformed file is an error.
func (s *Store) Load() (Rules, error) {
	var rules Rules
	if s.path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.WithField("file", s.path).Debug("No rules file found, using built-in defaults")
			return rules, nil
		}
		return rules, fmt.Errorf("reading rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parsing rules file %s: %w", s.path, err)
	}

	s.log.WithFields(
		logging.Field{Key: "file", Value: s.path},
		logging.Field{Key: "debit_keywords", Value: len(rules.DebitKeywords)},
		logging.Field{Key: "credit_keywords", Value: len(rules.CreditKeywords)},
	).Debug("Loaded extraction rules")
	return rules, nil
}

// Save writes the rules back to the file with 0600 permissions.
func (s *Store) Save(rules Rules) error {
	if s.path == "" {
		return fmt.Errorf("no rules file configured")
	}
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}
	return nil
}
