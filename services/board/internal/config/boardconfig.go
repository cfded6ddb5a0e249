package config

import (
	"errors"
	"time"

	platform "github.com/example/board-platform/internal/platform/config"
)

type Config struct {
	// JWTSecret verifies bearer tokens (HS256). Required in production.
	JWTSecret string
	// DatabaseURL selects the Postgres stores; empty means in-memory (development only).
	DatabaseURL string
	// RedisDSN selects the Redis snapshot cache; empty means in-process.
	RedisDSN string
	// NATSURL enables events and cross-replica cache invalidation; optional.
	NATSURL  string
	GRPCAddr string
	CacheTTL time.Duration
	// ReadyEvery is the interval of the gRPC readiness probe.
	ReadyEvery time.Duration
	// WritesPerMinute and WriteBurst bound mutations per user.
	WritesPerMinute int
	WriteBurst      int
}

func Load(isProd bool) (Config, error) {
	cfg := Config{
		JWTSecret:   platform.Env("JWT_SECRET"),
		DatabaseURL: platform.Env("DATABASE_URL"),
		RedisDSN:    platform.Env("REDIS_DSN"),
		NATSURL:     platform.Env("NATS_URL"),
		GRPCAddr:    platform.Env("GRPC_ADDR"),
		CacheTTL:    time.Duration(platform.EnvInt("CACHE_TTL_SEC", 30)) * time.Second,
		ReadyEvery:  platform.EnvDuration("READY_INTERVAL", 5*time.Second),

		WritesPerMinute: platform.EnvInt("WRITES_PER_MINUTE", 30),
		WriteBurst:      platform.EnvInt("WRITE_BURST", 10),
	}
	if cfg.GRPCAddr == "" {
		cfg.GRPCAddr = ":9090"
	}
	if isProd {
		if cfg.JWTSecret == "" {
			return Config{}, errors.New("JWT_SECRET is required in production")
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required in production")
		}
	}
	return cfg, nil
}
