// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Ingest struct {
		Scopes     []string `mapstructure:"scopes" yaml:"scopes"`
		MaxResults int      `mapstructure:"max_results" yaml:"max_results"`
		DaysBack   int      `mapstructure:"days_back" yaml:"days_back"`
		// UnknownDirection is what an unknown transaction direction resolves
		// to at normalize time: "fail" (explicit failure), "debit" or
		// "credit".
		UnknownDirection string `mapstructure:"unknown_direction" yaml:"unknown_direction"`
		AlertsDir        string `mapstructure:"alerts_dir" yaml:"alerts_dir"`
	} `mapstructure:"ingest" yaml:"ingest"`

	Dedup struct {
		WindowHours  int `mapstructure:"window_hours" yaml:"window_hours"`
		LookbackDays int `mapstructure:"lookback_days" yaml:"lookback_days"`
	} `mapstructure:"dedup" yaml:"dedup"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Store struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`

	Rules struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then ALERTS_-prefixed environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.alert-ingest")
	v.AddConfigPath(".alert-ingest")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ALERTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The Gemini key is always taken from the conventional unprefixed variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ingest.scopes", []string{"primary"})
	v.SetDefault("ingest.max_results", 100)
	v.SetDefault("ingest.days_back", 7)
	v.SetDefault("ingest.unknown_direction", "fail")
	v.SetDefault("ingest.alerts_dir", "alerts")

	v.SetDefault("dedup.window_hours", 72)
	v.SetDefault("dedup.lookback_days", 90)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("store.path", "transactions.db")
	v.SetDefault("rules.file", "")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Ingest.UnknownDirection {
	case "fail", "debit", "credit":
	default:
		return fmt.Errorf("ingest.unknown_direction must be 'fail', 'debit' or 'credit', got: %s", config.Ingest.UnknownDirection)
	}
	if len(config.Ingest.Scopes) == 0 {
		return fmt.Errorf("ingest.scopes must name at least one account scope")
	}
	if config.Ingest.MaxResults < 1 {
		return fmt.Errorf("ingest.max_results must be positive, got: %d", config.Ingest.MaxResults)
	}
	if config.Ingest.DaysBack < 1 {
		return fmt.Errorf("ingest.days_back must be positive, got: %d", config.Ingest.DaysBack)
	}

	if config.Dedup.WindowHours < 1 {
		return fmt.Errorf("dedup.window_hours must be positive, got: %d", config.Dedup.WindowHours)
	}
	if config.Dedup.LookbackDays < 1 {
		return fmt.Errorf("dedup.lookback_days must be positive, got: %d", config.Dedup.LookbackDays)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if config.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig configures a logrus logger from the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
