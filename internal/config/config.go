// Package config loads besttime configuration from a YAML file merged over
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/triclops200/besttime/pkg/reddit"
)

// DefaultConfigPath is where Load looks when no path is given.
const DefaultConfigPath = "~/.config/besttime/config.yaml"

// Config holds all besttime configuration.
type Config struct {
	Query   QueryConfig   `yaml:"query"`
	HTTP    HTTPConfig    `yaml:"http"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// QueryConfig controls the pipeline defaults.
type QueryConfig struct {
	Window    string `yaml:"window"`
	Threshold int    `yaml:"threshold"`
	Sections  int    `yaml:"sections"`
	Pages     int    `yaml:"pages"`
}

// HTTPConfig controls the listing client.
type HTTPConfig struct {
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CacheConfig controls the on-disk page cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir"`
	TTLHours int    `yaml:"ttl_hours"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file at path and merges it over defaults.
// A missing file yields the defaults; unreadable or invalid YAML is an
// error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", expanded, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate checks the fields that downstream code can't tolerate being
// wrong.
func (c *Config) Validate() error {
	if _, err := reddit.ParseWindow(c.Query.Window); err != nil {
		return err
	}
	if c.Query.Sections <= 1 {
		return fmt.Errorf("query.sections must be greater than 1, got %d", c.Query.Sections)
	}
	if c.Query.Pages < 1 {
		return fmt.Errorf("query.pages must be at least 1, got %d", c.Query.Pages)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/")), nil
	}
	return path, nil
}
