package config

import "time"

// RateLimitConfig configures the gateway token bucket.  Every sharer owns
// a bucket of Capacity requests which regains one request per Refill.
// With PerIP set the client address is part of the bucket key as well.
type RateLimitConfig struct {
    Enabled  bool
    Capacity int
    Refill   time.Duration
    PerIP    bool
    Prefix   string
}

func LoadRateLimitConfig() RateLimitConfig {
    c := RateLimitConfig{
        Enabled:  envBool("RATE_LIMIT_ENABLED", true),
        Capacity: max(envInt("RATE_LIMIT_CAPACITY", 60), 1),
        Refill:   envDur("RATE_LIMIT_REFILL", time.Second),
        PerIP:    envBool("RATE_LIMIT_PER_IP", false),
        Prefix:   envStr("RATE_LIMIT_PREFIX", "shareit:rl"),
    }
    if c.Refill < time.Millisecond {
        c.Refill = time.Second
    }
    return c
}
