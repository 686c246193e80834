package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "127.0.0.1:6007", cfg.Defaults.Address)
	assert.Equal(t, 20, cfg.Defaults.DrainBudgetMs)
	assert.Equal(t, 50, cfg.Defaults.TickMs)
	assert.Equal(t, 3600, cfg.Defaults.HistoryCap)
	assert.False(t, cfg.Defaults.LiveDebug)
	assert.Equal(t, 512, cfg.Profiler.MaxFunctions)
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		// Create temp dir with no config
		tmpDir := t.TempDir()
		origDir, _ := os.Getwd()
		os.Chdir(tmpDir)
		defer os.Chdir(origDir)

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Should have default values
		assert.Equal(t, "text", cfg.Format)
		assert.Equal(t, "127.0.0.1:6007", cfg.Defaults.Address)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configContent := `
format: json
quiet: true
verbose: false
defaults:
  address: "192.168.1.20:6010"
  drain_budget_ms: 10
  tick_ms: 25
  history_cap: 600
  live_debug: true
profiler:
  max_functions: 128
`
		configPath := filepath.Join(tmpDir, "rdb.yaml")
		err := os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "json", cfg.Format)
		assert.True(t, cfg.Quiet)
		assert.False(t, cfg.Verbose)
		assert.Equal(t, "192.168.1.20:6010", cfg.Defaults.Address)
		assert.Equal(t, 10, cfg.Defaults.DrainBudgetMs)
		assert.Equal(t, 25, cfg.Defaults.TickMs)
		assert.Equal(t, 600, cfg.Defaults.HistoryCap)
		assert.True(t, cfg.Defaults.LiveDebug)
		assert.Equal(t, 128, cfg.Profiler.MaxFunctions)
	})

	t.Run("missing fields keep defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "rdb.yaml")
		err := os.WriteFile(configPath, []byte("format: json"), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "127.0.0.1:6007", cfg.Defaults.Address)
		assert.Equal(t, 512, cfg.Profiler.MaxFunctions)
	})
}

func TestConfigEnvironmentVariables(t *testing.T) {
	// Save original env
	origFormat := os.Getenv("RDB_FORMAT")
	origAddress := os.Getenv("RDB_ADDRESS")
	defer func() {
		os.Setenv("RDB_FORMAT", origFormat)
		os.Setenv("RDB_ADDRESS", origAddress)
	}()

	// Set env variables
	os.Setenv("RDB_FORMAT", "json")
	os.Setenv("RDB_ADDRESS", "10.0.0.5:6007")

	// Load config (should pick up env vars)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "10.0.0.5:6007", cfg.Defaults.Address)
}
