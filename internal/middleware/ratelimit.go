package middleware

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/shareit/internal/config"
)

// bucketScript takes one token from the bucket at KEYS[1].
// ARGV: now ms, capacity, refill ms, key ttl ms.
// Returns {allowed (0|1), tokens left, ms until the next token}.
var bucketScript = redis.NewScript(`
local now, cap, refill, ttl = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4])
local b = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens, ts = tonumber(b[1]), tonumber(b[2])
if tokens == nil or ts == nil then
    tokens, ts = cap, now
end
local gained = math.floor((now - ts) / refill)
if gained > 0 then
    tokens = math.min(cap, tokens + gained)
    ts = ts + gained * refill
end
local allowed, wait = 0, 0
if tokens > 0 then
    allowed, tokens = 1, tokens - 1
else
    wait = refill - (now - ts)
end
redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', ts)
redis.call('PEXPIRE', KEYS[1], ttl)
return {allowed, tokens, wait}
`)

type bucketState struct {
    allowed   bool
    remaining int64
    waitMs    int64
}

func parseBucket(v any) (bucketState, bool) {
    arr, ok := v.([]any)
    if !ok || len(arr) != 3 {
        return bucketState{}, false
    }
    var n [3]int64
    for i := range arr {
        if n[i], ok = arr[i].(int64); !ok {
            return bucketState{}, false
        }
    }
    return bucketState{allowed: n[0] == 1, remaining: n[1], waitMs: n[2]}, true
}

// NewTokenBucket limits gateway traffic per sharer with a Redis token
// bucket.  A blocked request gets 429 and Retry-After.  When Redis fails
// the request goes through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    // an idle bucket is full again after Capacity refills; it can expire then
    ttl := time.Duration(cfg.Capacity) * cfg.Refill

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := rateKey(cfg, c)
            res, err := bucketScript.Run(c.Request().Context(), rdb, []string{key},
                time.Now().UnixMilli(), cfg.Capacity, cfg.Refill.Milliseconds(), ttl.Milliseconds()).Result()
            if err != nil {
                log.Warn("ratelimit: redis error", zap.String("key", key), zap.Error(err))
                return next(c)
            }
            st, ok := parseBucket(res)
            if !ok {
                log.Warn("ratelimit: unexpected script result", zap.String("key", key), zap.Any("result", res))
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(st.remaining, 10))
            if st.allowed {
                return next(c)
            }
            h.Set("Retry-After", strconv.FormatInt((st.waitMs+999)/1000, 10))
            log.Debug("ratelimit: blocked", zap.String("key", key), zap.Int64("wait_ms", st.waitMs))
            return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "rate limit exceeded"})
        }
    }
}

// rateKey names the bucket of the calling sharer, optionally narrowed to
// the client address.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
    parts := []string{cfg.Prefix}
    if cfg.PerIP {
        ip := c.RealIP()
        if ip == "" {
            ip = "unknown"
        }
        parts = append(parts, "ip", ip)
    }
    parts = append(parts, "user", sharerID(c))
    return strings.Join(parts, ":")
}
