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

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Getenv)
}

// LoadConfigFrom loads rate limiting configuration through lookup.
func LoadConfigFrom(lookup func(string) string) *Config {
	env := envReader(lookup)

	enabled := env.boolean("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    env.integer("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(env.str("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(env.str("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Plan generation calls the text generation provider and video lookup
		{Path: "/plan", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},

		// Analysis may embed every skill
		{Path: "/analyze", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},
		{Path: "/analyze/stream", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},
		{Path: "/extract", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		// Reads use the default limit; probes are unlimited (see MatchEndpoint)
	}
}

type envReader func(string) string

func (e envReader) str(key, defaultValue string) string {
	if value := strings.TrimSpace(e(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) integer(key string, defaultValue int) int {
	if value, err := strconv.Atoi(e.str(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func (e envReader) boolean(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(e.str(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(e.str(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
