package config

import (
    "strings"
    "time"
)

// CacheConfig controls the gateway response cache.  Only GET requests
// whose path starts with one of Paths are cached.  With Enabled false or
// no Redis client the cache is skipped.
type CacheConfig struct {
    Enabled      bool
    Paths        []string
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Paths:        splitList(envStr("CACHE_PATHS", "/items/search")),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "shareit:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func splitList(s string) []string {
    var out []string
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
