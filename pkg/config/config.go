// Package config loads the forge configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level forge configuration.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Store   StoreConfig   `yaml:"store"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LibraryConfig configures the rule library directory.
type LibraryConfig struct {
	// Dir is the directory holding .rbx/.json rule documents.
	Dir string `yaml:"dir"`

	// Watch enables hot reload on file changes.
	Watch bool `yaml:"watch"`

	// DebounceMs is the quiet period before a reload, in milliseconds.
	DebounceMs int `yaml:"debounce_ms"`
}

// StoreConfig configures the SQLite rule store.
type StoreConfig struct {
	// Path is the database file path.
	Path string `yaml:"path"`

	// DisableWAL turns off Write-Ahead Logging. WAL is on by default.
	DisableWAL bool `yaml:"disable_wal"`

	// BusyTimeoutMs is how long to wait on a locked database.
	BusyTimeoutMs int `yaml:"busy_timeout_ms"`
}

// ExportConfig configures rule file exports.
type ExportConfig struct {
	// Dir is where exported .rbx files are written.
	Dir string `yaml:"dir"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Library.Dir == "" {
		c.Library.Dir = "rules"
	}
	if c.Library.DebounceMs <= 0 {
		c.Library.DebounceMs = 100
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/rules.db"
	}
	if c.Store.BusyTimeoutMs <= 0 {
		c.Store.BusyTimeoutMs = 5000
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9190"
	}
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// Debounce returns the library debounce interval as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Library.DebounceMs) * time.Millisecond
}

// BusyTimeout returns the store busy timeout as a duration.
func (c *Config) BusyTimeout() time.Duration {
	return time.Duration(c.Store.BusyTimeoutMs) * time.Millisecond
}
