package config

import (
	"os"
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware that
// fronts the restaurant read endpoints.  Restaurants and menus never change
// after seeding, so their responses can be replayed from Redis.  Caching is
// skipped when Enabled is false or no Redis client is available.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string // route, method_route, route_query or method_route_query
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* variables.
func LoadCacheConfig() CacheConfig {
	c, _ := ParseCacheConfig(os.LookupEnv)
	return c
}

// ParseCacheConfig builds a CacheConfig from lookup.  Malformed values fall
// back to defaults and are reported in the returned error.
func ParseCacheConfig(lookup func(string) (string, bool)) (CacheConfig, error) {
	e := env{lookup: lookup}
	c := CacheConfig{
		Enabled:      e.flag("CACHE_ENABLED", true),
		Methods:      parseMethods(e.str("CACHE_METHODS", "GET")),
		TTL:          e.dur("CACHE_TTL", 5*time.Minute),
		KeyStrategy:  strings.ToLower(e.str("CACHE_KEY_STRATEGY", "route_query")),
		Prefix:       e.str("CACHE_PREFIX", "tb:cache"),
		MaxBodyBytes: e.num("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
	return c, joinErrs(e.errs)
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range splitList(s) {
		m[strings.ToUpper(p)] = true
	}
	return m
}
