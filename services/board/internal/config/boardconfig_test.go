package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"JWT_SECRET", "DATABASE_URL", "REDIS_DSN", "NATS_URL", "GRPC_ADDR", "CACHE_TTL_SEC", "READY_INTERVAL", "WRITES_PER_MINUTE", "WRITE_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GRPCAddr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.GRPCAddr)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("expected 30s cache ttl, got %v", cfg.CacheTTL)
	}
	if cfg.ReadyEvery != 5*time.Second {
		t.Fatalf("expected 5s ready interval, got %v", cfg.ReadyEvery)
	}
	if cfg.WritesPerMinute != 30 || cfg.WriteBurst != 10 {
		t.Fatalf("unexpected write limits: %d/min burst %d", cfg.WritesPerMinute, cfg.WriteBurst)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRPC_ADDR", ":7000")
	t.Setenv("CACHE_TTL_SEC", "5")
	t.Setenv("REDIS_DSN", "redis://cache:6379/0")

	cfg, err := Load(false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GRPCAddr != ":7000" || cfg.CacheTTL != 5*time.Second || cfg.RedisDSN != "redis://cache:6379/0" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_ProductionRequirements(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://db/board")
	if _, err := Load(true); err == nil {
		t.Fatal("expected error without JWT_SECRET in production")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(true); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}

	t.Setenv("DATABASE_URL", "postgres://db/board")
	if _, err := Load(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
