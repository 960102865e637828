package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig builds the limiter configuration from environment variables,
// falling back to the built-in defaults.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseClientList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseClientList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. CSV imports and
// bulk stats are the expensive operations and get the strictest limits;
// writes sit in a middle tier; reads fall through to the global default.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/creators/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5}, // covers CSV imports
		{Path: "/stats/bulk", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		{Path: "/creators", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/creators/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/creators/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/style-examples/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/style-examples/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/response-examples/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/response-examples/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}

// parseClientList parses a comma-separated list of client IPs into a set.
func parseClientList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			result[entry] = true
		}
	}
	return result
}
