// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, CLI flags or defaults.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Redis URL for the wage-rate cache

	// Output
	OutputDir string `json:"output_dir,omitempty"` // Directory artifacts are written to
	Format    string `json:"format,omitempty"`     // "pdf" or "html"
	Template  string `json:"template,omitempty"`   // Path to an HTML template
	Currency  string `json:"currency,omitempty"`   // Currency printed after prices

	// Limits
	MaxConcurrency      int `json:"max_concurrency,omitempty"`       // Employees resolved in parallel
	PrintTimeoutSeconds int `json:"print_timeout_seconds,omitempty"` // Headless browser print timeout
	RateCacheTTLSeconds int `json:"rate_cache_ttl_seconds,omitempty"` // Zero falls back to REDIS_TTL

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		OutputDir:           "out",
		Format:              "pdf",
		Currency:            "EUR",
		MaxConcurrency:      8,
		PrintTimeoutSeconds: 30,
		Port:                8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required connections are checked by the commands that need them.
func (c *Config) Validate() error {
	switch c.Format {
	case "", "pdf", "html":
	default:
		return fmt.Errorf("config error: 'format' must be pdf or html, got %q", c.Format)
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("config error: 'max_concurrency' must be non-negative")
	}
	if c.PrintTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'print_timeout_seconds' must be non-negative")
	}
	if c.RateCacheTTLSeconds < 0 {
		return fmt.Errorf("config error: 'rate_cache_ttl_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Currency == "" {
		result.Currency = defaults.Currency
	}

	// Int fields: use default if zero
	if result.MaxConcurrency == 0 {
		result.MaxConcurrency = defaults.MaxConcurrency
	}
	if result.PrintTimeoutSeconds == 0 {
		result.PrintTimeoutSeconds = defaults.PrintTimeoutSeconds
	}
	if result.RateCacheTTLSeconds == 0 {
		result.RateCacheTTLSeconds = defaults.RateCacheTTLSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
