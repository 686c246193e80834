package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`

	Profiler ProfilerConfig `mapstructure:"profiler"`
}

// DefaultsConfig holds default values for various commands
type DefaultsConfig struct {
	// Attach command defaults
	Address       string `mapstructure:"address"`
	DrainBudgetMs int    `mapstructure:"drain_budget_ms"`
	TickMs        int    `mapstructure:"tick_ms"`
	HistoryCap    int    `mapstructure:"history_cap"`
	LiveDebug     bool   `mapstructure:"live_debug"`
}

// ProfilerConfig holds profiler request options
type ProfilerConfig struct {
	// MaxFunctions is sent with the servers profiler enable request;
	// the session clamps it to [16, 512].
	MaxFunctions int `mapstructure:"max_functions"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			Address:       "127.0.0.1:6007",
			DrainBudgetMs: 20,
			TickMs:        50,
			HistoryCap:    3600,
		},
		Profiler: ProfilerConfig{
			MaxFunctions: 512,
		},
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("rdb")
	v.SetConfigType("yaml")

	// Add config paths (in order of precedence, lowest first)
	// 1. System-wide config
	v.AddConfigPath("/etc/rdb/")
	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "rdb"))
	}
	// 3. Home directory (as .rdb.yaml)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".rdb")
	}
	// 4. Current directory
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("RDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	v.BindEnv("format", "RDB_FORMAT")
	v.BindEnv("quiet", "RDB_QUIET")
	v.BindEnv("verbose", "RDB_VERBOSE")
	v.BindEnv("defaults.address", "RDB_ADDRESS")

	// Set defaults
	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("defaults.address", cfg.Defaults.Address)
	v.SetDefault("defaults.drain_budget_ms", cfg.Defaults.DrainBudgetMs)
	v.SetDefault("defaults.tick_ms", cfg.Defaults.TickMs)
	v.SetDefault("defaults.history_cap", cfg.Defaults.HistoryCap)
	v.SetDefault("profiler.max_functions", cfg.Profiler.MaxFunctions)

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			return nil, err
		}
		// Config file not found; use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
