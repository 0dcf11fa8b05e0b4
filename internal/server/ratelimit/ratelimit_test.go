package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Hour,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/templates"
	method := "GET"

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
	if !rateInfo.ResetTime.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/analyze", "POST")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/templates", "GET")
	if allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/plan", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/plan", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	for i := 0; i < 5; i++ {
		allowed, rateInfo := limiter.Allow(clientID, "/plan", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
		}
	}

	allowed, rateInfo := limiter.Allow(clientID, "/plan", "POST")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if rateInfo.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
	}

	// Different endpoint should use default limit
	allowed, rateInfo = limiter.Allow(clientID, "/templates", "GET")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}

	// Other clients have their own bucket
	if allowed, _ := limiter.Allow("10.0.0.2", "/plan", "POST"); !allowed {
		t.Error("Expected another client to be allowed")
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("Expected health check %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Hour,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("127.0.0.1", "/templates", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		if allowed, _ := limiter.Allow(clientID, "/templates", "GET"); !allowed {
			t.Errorf("Expected request from %s to be allowed", clientID)
		}
	}
	if got := limiter.size(); got != 10 {
		t.Fatalf("Expected 10 buckets, got %d", got)
	}

	limiter.cleanupBuckets(time.Now().Add(-time.Hour))
	if got := limiter.size(); got != 10 {
		t.Errorf("Expected recent buckets to survive cleanup, got %d", got)
	}

	limiter.cleanupBuckets(time.Now().Add(time.Second))
	if got := limiter.size(); got != 0 {
		t.Errorf("Expected idle buckets to be removed, got %d", got)
	}
}

func TestLimiter_Burst(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/extract", Method: "POST", Limit: 10, Window: time.Hour, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/extract", "POST"); !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	// burst exhausted, no refill yet
	if allowed, _ := limiter.Allow("127.0.0.1", "/extract", "POST"); allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("127.0.0.1", "/templates", "GET"); !allowed {
		t.Error("Expected default limiter to allow a first request")
	}
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/plan", Method: "POST", Limit: 1},
		{Path: "/templates/", Method: "GET", Limit: 2},
	}

	if got := MatchEndpoint("/plan", "POST", configs); got == nil || got.Limit != 1 {
		t.Errorf("Expected exact match for /plan, got %+v", got)
	}
	if got := MatchEndpoint("/plan", "GET", configs); got != nil {
		t.Errorf("Expected no match for GET /plan, got %+v", got)
	}
	if got := MatchEndpoint("/templates/devops", "GET", configs); got == nil || got.Limit != 2 {
		t.Errorf("Expected prefix match, got %+v", got)
	}
	if got := MatchEndpoint("/health", "GET", configs); got == nil || got.Limit != 0 {
		t.Errorf("Expected unlimited health check, got %+v", got)
	}
	if got := MatchEndpoint("/llm/status", "GET", configs); got == nil || got.Limit != 0 {
		t.Errorf("Expected unlimited status check, got %+v", got)
	}
}

func TestMatchEndpoint_LongestPrefix(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyze/", Method: "POST", Limit: 1},
		{Path: "/analyze/stream/", Method: "POST", Limit: 2},
		{Path: "/analyze/stream/raw", Method: "POST", Limit: 3},
	}

	if got := MatchEndpoint("/analyze/stream/x", "POST", configs); got == nil || got.Limit != 2 {
		t.Errorf("Expected longest prefix match, got %+v", got)
	}
	if got := MatchEndpoint("/analyze/other", "POST", configs); got == nil || got.Limit != 1 {
		t.Errorf("Expected shorter prefix match, got %+v", got)
	}
	if got := MatchEndpoint("/analyze/stream/raw", "POST", configs); got == nil || got.Limit != 3 {
		t.Errorf("Expected exact match to win, got %+v", got)
	}
}

func TestLoadConfigFrom(t *testing.T) {
	env := map[string]string{
		"RATE_LIMIT_DEFAULT_LIMIT":  "50",
		"RATE_LIMIT_DEFAULT_WINDOW": "30s",
		"RATE_LIMIT_WHITELIST":      "127.0.0.1, ::1,",
		"RATE_LIMIT_BLACKLIST":      "",
	}
	config := LoadConfigFrom(func(k string) string { return env[k] })

	if !config.Enabled {
		t.Error("Expected rate limiting to be enabled by default")
	}
	if config.DefaultLimit != 50 {
		t.Errorf("Expected default limit 50, got %d", config.DefaultLimit)
	}
	if config.DefaultWindow != 30*time.Second {
		t.Errorf("Expected 30s window, got %v", config.DefaultWindow)
	}
	if !config.Whitelist["127.0.0.1"] || !config.Whitelist["::1"] || len(config.Whitelist) != 2 {
		t.Errorf("Unexpected whitelist %v", config.Whitelist)
	}
	if len(config.Blacklist) != 0 {
		t.Errorf("Expected empty blacklist, got %v", config.Blacklist)
	}
	if len(config.EndpointConfigs) == 0 {
		t.Error("Expected endpoint configs")
	}

	disabled := LoadConfigFrom(func(k string) string {
		if k == "RATE_LIMIT_ENABLED" {
			return "false"
		}
		return ""
	})
	if disabled.Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}
