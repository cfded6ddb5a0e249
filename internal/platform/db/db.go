package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/board-platform/internal/platform/config"
)

var ErrNoDSN = errors.New("DATABASE_URL is required")

// Open opens and pings a pgxpool for dsn. Pool sizing can be tuned with
// DB_MAX_CONNS and DB_MIN_CONNS.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrNoDSN
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = int32(config.EnvInt("DB_MAX_CONNS", 10))
	cfg.MinConns = int32(config.EnvInt("DB_MIN_CONNS", 1))
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
