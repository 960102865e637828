package ratelimit

import (
	"strings"
)

// healthUnlimited keeps the health endpoint exempt regardless of configuration.
var healthUnlimited = EndpointConfig{Path: "/health", Method: "GET"}

// MatchEndpoint resolves a request to its endpoint configuration, or nil when
// only the global default applies. Patterns ending in "/" match by prefix, so
// "/creators/" covers "/creators/{id}" and everything below it; exact matches
// win over prefix matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == healthUnlimited.Path && method == healthUnlimited.Method {
		return &healthUnlimited
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if prefixMatch == nil && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			prefixMatch = config
		}
	}
	return prefixMatch
}
