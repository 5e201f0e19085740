package config

// Redis backs the API rate limiter and the response cache.  Both degrade to
// pass-through when no client is available, so a Redis outage at startup
// never prevents tickets from being sold.

import (
    "context"
    "crypto/tls"
    "log"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables:
//   REDIS_ENABLED – set to false to skip Redis entirely (default true)
//   REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//   REDIS_ADDR – host:port shorthand, used when host/port are not both set
//   REDIS_PASSWORD – optional password
//   REDIS_DB – database number (default 0)
//   REDIS_TLS – enable TLS when "true" or "1"
// nil is returned when Redis is disabled or the server does not answer a
// ping within two seconds.
func NewRedisClient() *redis.Client {
    if !envBool("REDIS_ENABLED", true) {
        return nil
    }
    addr := envStr("REDIS_ADDR", "localhost:6379")
    if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
        addr = host + ":" + port
    }
    var tlsConf *tls.Config
    if v := envStr("REDIS_TLS", ""); strings.EqualFold(v, "true") || v == "1" {
        tlsConf = &tls.Config{InsecureSkipVerify: true}
    }
    client := redis.NewClient(&redis.Options{
        Addr:      addr,
        Password:  envStr("REDIS_PASSWORD", ""),
        DB:        envInt("REDIS_DB", 0),
        TLSConfig: tlsConf,
    })
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        log.Printf("redis: %s unreachable, caching and rate limiting disabled: %v", addr, err)
        _ = client.Close()
        return nil
    }
    return client
}
