// Package common provides shared utilities for trendscore
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/trendscore/internal/analytics"
)

// Config holds all configuration for trendscore
type Config struct {
	Environment string         `toml:"environment"`
	Analysis    AnalysisConfig `toml:"analysis"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Logging     LoggingConfig  `toml:"logging"`
}

// AnalysisConfig holds the decision window, batch fan-out and engine thresholds.
// Engine is passed to the analyzer unchanged.
type AnalysisConfig struct {
	DefaultWindow int              `toml:"default_window"`
	Concurrency   int              `toml:"concurrency"`
	Engine        analytics.Config `toml:"engine"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Market MarketConfig `toml:"market"` // Fetched series cache (file-based JSON)
}

// MarketConfig holds the series cache location and freshness
type MarketConfig struct {
	Path     string `toml:"path"`
	CacheTTL string `toml:"cache_ttl"` // duration string; "0" disables the cache
}

// GetCacheTTL parses and returns the cache TTL
func (c *MarketConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return FreshnessSeries
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD EODHDConfig `toml:"eodhd"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Analysis: AnalysisConfig{
			DefaultWindow: 30,
			Concurrency:   4,
			Engine:        analytics.DefaultConfig(),
		},
		Storage: StorageConfig{
			Market: MarketConfig{Path: "data/market", CacheTTL: "6h"},
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TRENDSCORE_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("TRENDSCORE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("TRENDSCORE_DATA_PATH"); path != "" {
		config.Storage.Market.Path = filepath.Join(path, "market")
	}

	if w := os.Getenv("TRENDSCORE_WINDOW"); w != "" {
		if v, err := strconv.Atoi(w); err == nil {
			config.Analysis.DefaultWindow = v
		}
	}

	if c := os.Getenv("TRENDSCORE_CONCURRENCY"); c != "" {
		if v, err := strconv.Atoi(c); err == nil && v > 0 {
			config.Analysis.Concurrency = v
		}
	}

	for _, name := range []string{"EODHD_API_KEY", "TRENDSCORE_EODHD_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.EODHD.APIKey = v
			break
		}
	}
}

// Validate rejects settings the engine cannot run with
func (c *Config) Validate() error {
	if err := analytics.ValidateWindow(c.Analysis.DefaultWindow); err != nil {
		return fmt.Errorf("analysis.default_window: %w", err)
	}
	if c.Analysis.Concurrency < 1 {
		return fmt.Errorf("analysis.concurrency must be positive, got %d", c.Analysis.Concurrency)
	}
	return nil
}

// ValidateRequired returns the names of settings that must be supplied before
// series can be fetched.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if strings.TrimSpace(c.Clients.EODHD.APIKey) == "" {
		missing = append(missing, "clients.eodhd.api_key")
	}
	return missing
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
