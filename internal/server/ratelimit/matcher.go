package ratelimit

import (
	"net/http"
	"strings"
)

// unlimitedPaths are GET probes that never count against a client
var unlimitedPaths = map[string]bool{
	"/health":     true,
	"/llm/status": true,
}

// MatchEndpoint finds the configuration for a request. An exact path wins;
// otherwise the longest configured path ending in "/" that prefixes the
// request path is used. Nil means the default limit applies, and a zero
// Limit means the request is not limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && unlimitedPaths[path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	for i := range configs {
		candidate := &configs[i]
		if candidate.Method != method {
			continue
		}
		if candidate.Path == path {
			return candidate
		}
		if !strings.HasSuffix(candidate.Path, "/") || !strings.HasPrefix(path, candidate.Path) {
			continue
		}
		if best == nil || len(candidate.Path) > len(best.Path) {
			best = candidate
		}
	}
	return best
}
