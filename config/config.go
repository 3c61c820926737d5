// Package config loads the replay builder configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete replay builder configuration.
type Config struct {
	Data    DataConfig    `json:"data" yaml:"data"`
	Site    SiteConfig    `json:"site" yaml:"site"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Notify  NotifyConfig  `json:"notify" yaml:"notify"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// DataConfig locates the archived backtest artifacts.
type DataConfig struct {
	// Dir holds portfolio_state.(csv|json) and trade_history.(csv|json).
	Dir string `json:"dir" yaml:"dir"`
}

// SiteConfig controls the rendered replay page.
type SiteConfig struct {
	Output string `json:"output" yaml:"output"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// JournalConfig selects where reconciled trades are persisted.
type JournalConfig struct {
	Type          string `json:"type,omitempty" yaml:"type,omitempty"` // "", "csv" or "sqlite"
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SnapshotsFile string `json:"snapshots_file,omitempty" yaml:"snapshots_file,omitempty"`
}

// NotifyConfig configures the optional webhook summary message. The signing
// secret is read from the environment, never from the config file.
type NotifyConfig struct {
	Webhook   string `json:"webhook,omitempty" yaml:"webhook,omitempty"`
	SecretEnv string `json:"secret_env,omitempty" yaml:"secret_env,omitempty"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // "console" or "json"
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Site.Output == "" {
		return fmt.Errorf("site.output is required")
	}
	switch c.Journal.Type {
	case "":
		// journaling disabled
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SnapshotsFile == "" {
			return fmt.Errorf("journal trades_file and snapshots_file required for csv type")
		}
	default:
		return fmt.Errorf("journal.type must be empty, 'csv' or 'sqlite'")
	}
	if c.Notify.Webhook != "" && !strings.HasPrefix(c.Notify.Webhook, "https://") {
		return fmt.Errorf("notify.webhook must be an https URL")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir: "replay/data",
		},
		Site: SiteConfig{
			Output: "replay/index.html",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
