package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one class of requests
type Rule struct {
	Name       string
	Method     string // empty matches every method
	PathPrefix string
	PathSuffix string
	Limit      int // requests per Window; zero means unlimited
	Window     time.Duration
	Burst      int // defaults to Limit
}

func (r *Rule) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

func (r *Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	return strings.HasPrefix(path, r.PathPrefix) && strings.HasSuffix(path, r.PathSuffix)
}

// Config holds rate limiting configuration
type Config struct {
	Enabled bool
	Exempt  map[string]bool
	Rules   []Rule // first match wins
}

// Match returns the first rule covering the request, or nil
func (c *Config) Match(method, path string) *Rule {
	for i := range c.Rules {
		if c.Rules[i].matches(method, path) {
			return &c.Rules[i]
		}
	}
	return nil
}

// DefaultRules throttles document generation hardest, then writes, then everything else.
// Health checks are never limited.
func DefaultRules(generatePerHour, writesPerMinute, readsPerMinute int) []Rule {
	return []Rule{
		{Name: "health", Method: "GET", PathPrefix: "/health"},
		{Name: "generate", Method: "POST", PathPrefix: "/document-configurations/", PathSuffix: "/generate",
			Limit: generatePerHour, Window: time.Hour, Burst: min(generatePerHour, 5)},
		{Name: "write-post", Method: "POST", Limit: writesPerMinute, Window: time.Minute},
		{Name: "write-patch", Method: "PATCH", Limit: writesPerMinute, Window: time.Minute},
		{Name: "write-delete", Method: "DELETE", Limit: writesPerMinute, Window: time.Minute},
		{Name: "read", Limit: readsPerMinute, Window: time.Minute},
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	exempt := make(map[string]bool)
	for _, ip := range strings.Split(os.Getenv("RATE_LIMIT_EXEMPT"), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			exempt[ip] = true
		}
	}

	return &Config{
		Enabled: true,
		Exempt:  exempt,
		Rules: DefaultRules(
			envInt("RATE_LIMIT_GENERATE_PER_HOUR", 60),
			envInt("RATE_LIMIT_WRITES_PER_MINUTE", 120),
			envInt("RATE_LIMIT_READS_PER_MINUTE", 600),
		),
	}
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}
