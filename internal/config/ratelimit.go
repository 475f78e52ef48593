package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// RateLimitConfig configures the Redis token bucket placed in front of the
// write endpoints (availability checks and booking creation).
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string // ip, session, route, ip_route, session_route or ip_session_route
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables.
func LoadRateLimitConfig() RateLimitConfig {
	c, _ := ParseRateLimitConfig(os.LookupEnv)
	return c
}

// ParseRateLimitConfig builds a RateLimitConfig from lookup and clamps the
// values to something the limiter script can work with.
func ParseRateLimitConfig(lookup func(string) (string, bool)) (RateLimitConfig, error) {
	e := env{lookup: lookup}
	c := RateLimitConfig{
		Enabled:        e.flag("RATE_LIMIT_ENABLED", true),
		Capacity:       e.num("RATE_LIMIT_CAPACITY", 30),
		RefillTokens:   e.num("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: e.dur("RATE_LIMIT_REFILL_INTERVAL", 2*time.Second),
		TTL:            e.dur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    strings.ToLower(e.str("RATE_LIMIT_KEY_STRATEGY", "ip_session_route")),
		Prefix:         e.str("RATE_LIMIT_PREFIX", "tb:rl"),
		Debug:          e.flag("RATE_LIMIT_DEBUG", false),
	}
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	// A bucket must outlive several refill intervals or it resets to full.
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c, joinErrs(e.errs)
}

func joinErrs(errs []error) error { return errors.Join(errs...) }
