package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "day", cfg.Query.Window)
	assert.Equal(t, 100, cfg.Query.Threshold)
	assert.Equal(t, 24, cfg.Query.Sections)
	assert.Equal(t, 1, cfg.Query.Pages)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
query:
  threshold: 500
  window: week
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Query.Threshold)
	assert.Equal(t, "week", cfg.Query.Window)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, 24, cfg.Query.Sections)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("query: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown window", func(c *Config) { c.Query.Window = "fortnight" }},
		{"single section", func(c *Config) { c.Query.Sections = 1 }},
		{"zero pages", func(c *Config) { c.Query.Pages = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.config/besttime/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "besttime", "config.yaml"), got)

	got, err = ExpandPath("/etc/besttime.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/besttime.yaml", got)
}
