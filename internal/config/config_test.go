package config

import (
    "testing"
    "time"
)

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()
    if cfg.Capacity != 1 {
        t.Fatalf("Capacity = %d, want 1", cfg.Capacity)
    }
    if cfg.TTL != 10*time.Second {
        t.Fatalf("TTL = %s, want 10s", cfg.TTL)
    }
}

func TestLoadCacheConfig(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")
    t.Setenv("CACHE_TTL", "not-a-duration")

    cfg := LoadCacheConfig()
    if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || cfg.Methods["POST"] {
        t.Fatalf("unexpected methods %v", cfg.Methods)
    }
    if cfg.TTL != 30*time.Second {
        t.Fatalf("TTL = %s, want default 30s", cfg.TTL)
    }
    if cfg.Prefix != "ticket-cache" {
        t.Fatalf("Prefix = %q", cfg.Prefix)
    }
}

func TestLoad_MemoryStore(t *testing.T) {
    t.Setenv("APP_ENV", "test")
    t.Setenv("APP_PORT", "8080")
    t.Setenv("TICKET_STORE", "Memory")
    t.Setenv("SEATS_PER_SECTION", "8")
    t.Setenv("RABBITMQ_URL", "amqp://u:p@broker:5672/")

    cfg := Load()
    if cfg.TicketStore != StoreMemory || cfg.SeatsPerSection != 8 {
        t.Fatalf("unexpected config %+v", cfg)
    }
    if cfg.DBHost != "" {
        t.Fatalf("DB settings should be ignored for the memory store")
    }
    if cfg.AMQPURL != "amqp://u:p@broker:5672/" {
        t.Fatalf("AMQPURL = %q", cfg.AMQPURL)
    }
}

func TestAccessTTL(t *testing.T) {
    t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
    if got := AccessTTL(); got != 15*time.Minute {
        t.Fatalf("AccessTTL = %s, want 15m", got)
    }
    t.Setenv("ACCESS_TOKEN_TTL_MIN", "0")
    if got := AccessTTL(); got != time.Hour {
        t.Fatalf("AccessTTL = %s, want default 1h", got)
    }
}
