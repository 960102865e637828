// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Optional stats cache; empty disables caching

	// Server
	Port      int    `json:"port,omitempty"`       // HTTP listen port
	JWTSecret string `json:"jwt_secret,omitempty"` // Overrides JWT_SECRET when set

	// Defaults for CLI corpus commands
	CreatorID string `json:"creator_id,omitempty"` // Default creator UUID for import/export/stats

	// Tuning
	PageSize          int  `json:"page_size,omitempty"`          // Default list page size
	SearchDebounceMS  int  `json:"search_debounce_ms,omitempty"` // Live query settle delay
	StatsCacheTTLSecs int  `json:"stats_cache_ttl_s,omitempty"`  // Snapshot cache lifetime
	Verbose           bool `json:"verbose,omitempty"`            // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.PageSize < 0 {
		return fmt.Errorf("config error: 'page_size' must be non-negative")
	}
	if c.SearchDebounceMS < 0 {
		return fmt.Errorf("config error: 'search_debounce_ms' must be non-negative")
	}
	if c.StatsCacheTTLSecs < 0 {
		return fmt.Errorf("config error: 'stats_cache_ttl_s' must be non-negative")
	}
	if c.CreatorID != "" {
		if _, err := uuid.Parse(c.CreatorID); err != nil {
			return fmt.Errorf("config error: 'creator_id' is not a valid UUID: %v", err)
		}
	}
	return nil
}

// SearchSettleDelay returns SearchDebounceMS as a duration. Zero means the
// caller should use its own default.
func (c *Config) SearchSettleDelay() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.CreatorID == "" {
		result.CreatorID = defaults.CreatorID
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PageSize == 0 {
		result.PageSize = defaults.PageSize
	}
	if result.StatsCacheTTLSecs == 0 {
		result.StatsCacheTTLSecs = defaults.StatsCacheTTLSecs
	}

	if result.SearchDebounceMS == 0 {
		if defaults.SearchDebounceMS > 0 {
			result.SearchDebounceMS = defaults.SearchDebounceMS
		} else {
			result.SearchDebounceMS = 350 // settle delay for live search
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
