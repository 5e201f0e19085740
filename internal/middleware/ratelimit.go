package middleware

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/train-ticket-booking/internal/config"
)

// RateLimit applies a Redis-backed token bucket per key (see buildRateKey).
// The bucket state lives in a hash updated atomically by a Lua script, so
// several service instances share one limit.  Redis errors let the request
// through; a nil client disables limiting.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    limiterScript := redis.NewScript(`
        local key = KEYS[1]
        local now_ms = tonumber(ARGV[1])
        local capacity = tonumber(ARGV[2])
        local refill_tokens = tonumber(ARGV[3])
        local interval_ms = tonumber(ARGV[4])
        local ttl_seconds = tonumber(ARGV[5])

        local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
        local tokens = tonumber(state[1])
        local last_refill = tonumber(state[2])

        if tokens == nil or last_refill == nil then
            tokens = capacity
            last_refill = now_ms
        end

        if interval_ms > 0 and refill_tokens > 0 then
            local elapsed = math.max(0, now_ms - last_refill)
            local intervals = math.floor(elapsed / interval_ms)
            if intervals > 0 then
                tokens = math.min(capacity, tokens + (intervals * refill_tokens))
                last_refill = last_refill + (intervals * interval_ms)
            end
        end

        local allowed = 0
        local retry_after_ms = 0
        if tokens > 0 then
            allowed = 1
            tokens = tokens - 1
        else
            local until_next = interval_ms - (now_ms - last_refill)
            if until_next < 0 then until_next = 0 end
            retry_after_ms = until_next
        end

        redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill, 'capacity', capacity)
        redis.call('EXPIRE', key, ttl_seconds)

        return { allowed, tokens, retry_after_ms }
    `)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := buildRateKey(cfg, c)
            vals, err := limiterScript.Run(c.Request().Context(), rdb, []string{key},
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                int64(cfg.TTL/time.Second),
            ).Result()
            if err != nil {
                if cfg.Debug {
                    c.Logger().Warnf("[ratelimit] redis error for key=%s: %v", key, err)
                }
                return next(c)
            }
            res, ok := parseBucketResult(vals)
            if !ok {
                if cfg.Debug {
                    c.Logger().Warnf("[ratelimit] unexpected script result for key=%s: %#v", key, vals)
                }
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if res.allowed {
                return next(c)
            }

            secs := int(math.Ceil(float64(res.retryMs) / 1000.0))
            if secs < 0 {
                secs = 0
            }
            h.Set("Retry-After", strconv.Itoa(secs))
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error":       "rate limit exceeded",
                "retry_after": secs,
            })
        }
    }
}

// bucketResult is the decoded reply of the limiter script.
type bucketResult struct {
    allowed   bool
    remaining int64
    retryMs   int64
}

// parseBucketResult decodes the {allowed, tokens, retry_after_ms} array
// returned by the limiter script.
func parseBucketResult(vals interface{}) (bucketResult, bool) {
    arr, ok := vals.([]interface{})
    if !ok || len(arr) != 3 {
        return bucketResult{}, false
    }
    return bucketResult{
        allowed:   asInt64(arr[0]) == 1,
        remaining: asInt64(arr[1]),
        retryMs:   asInt64(arr[2]),
    }, true
}

func asInt64(v interface{}) int64 {
    switch t := v.(type) {
    case int64:
        return t
    case int:
        return int64(t)
    case float64:
        return int64(t)
    case string:
        if n, err := strconv.ParseInt(t, 10, 64); err == nil {
            return n
        }
    }
    return 0
}

// buildRateKey derives the bucket key from the client IP and/or route.
// Passengers never authenticate, so there is no per-user strategy.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    route := c.Request().Method + " " + c.Path()

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "route":
        parts = append(parts, "route", route)
    default: // "ip_route"
        parts = append(parts, "ip", ip, "route", route)
    }
    return strings.Join(parts, ":")
}
