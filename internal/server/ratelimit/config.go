package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. Route uses the same "METHOD /path" form as the
// server's mux patterns; a path ending in "/" matches every path below it.
// Burst defaults to Limit when 0.
type Rule struct {
	Route  string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds rate limiting configuration. Allow and Deny are sets of
// client IPs that are never limited or always rejected; Unlimited lists
// routes exempt from limiting.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Allow           map[string]bool
	Deny            map[string]bool
	Rules           []Rule
	Unlimited       []string
}

// Analysis routes differ a lot in cost: /analyze may decode a file, call the
// role model and the grammar service, /sections is a pure text scan.
var defaultRules = []Rule{
	{Route: "POST /analyze", Limit: 30, Window: time.Minute, Burst: 5},
	{Route: "POST /match", Limit: 60, Window: time.Minute, Burst: 10},
	{Route: "POST /sections", Limit: 120, Window: time.Minute, Burst: 20},
}

// DefaultRules returns a copy of the per-route limits used by LoadConfig.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

// LoadConfig reads rate limiting settings from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !envValue("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envValue("RATE_LIMIT_DEFAULT_LIMIT", 300, strconv.Atoi),
		DefaultWindow:   envValue("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envValue("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Allow:           ipSet(os.Getenv("RATE_LIMIT_ALLOW")),
		Deny:            ipSet(os.Getenv("RATE_LIMIT_DENY")),
		Rules:           DefaultRules(),
		Unlimited:       []string{"GET /health"},
	}
}

// envValue parses the variable key with parse, falling back to def when it
// is unset or malformed.
func envValue[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
