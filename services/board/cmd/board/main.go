package main

import (
	"context"
	"errors"
	"net"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/board-platform/internal/platform/auth"
	"github.com/example/board-platform/internal/platform/config"
	"github.com/example/board-platform/internal/platform/db"
	"github.com/example/board-platform/internal/platform/events"
	"github.com/example/board-platform/internal/platform/httpserver"
	"github.com/example/board-platform/internal/platform/logging"
	"github.com/example/board-platform/internal/platform/natsconn"
	"github.com/example/board-platform/internal/platform/run"
	"github.com/example/board-platform/services/board/internal/cache"
	boardconfig "github.com/example/board-platform/services/board/internal/config"
	"github.com/example/board-platform/services/board/internal/grpcapi"
	"github.com/example/board-platform/services/board/internal/handlers"
	"github.com/example/board-platform/services/board/internal/store"
	"github.com/example/board-platform/services/board/internal/thread"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	boardCfg, err := boardconfig.Load(cfg.IsProd())
	if err != nil {
		log.Error("config", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	stores := initStores(log, boardCfg.DatabaseURL, cfg.IsProd())
	if stores.close != nil {
		defer stores.close()
	}

	// NATS is optional: without it events are dropped and the in-process
	// cache is not shared between replicas.
	var (
		bus       cache.Broadcaster
		publisher *events.Publisher
		nc        *nats.Conn
	)
	nc, err = natsconn.Connect(natsconn.Options{URL: boardCfg.NATSURL, Name: cfg.ServiceName})
	switch {
	case errors.Is(err, natsconn.ErrNotConfigured):
		log.Warn("NATS_URL not set, events disabled")
	case err != nil:
		log.Error("nats connect", zap.Error(err))
	default:
		defer nc.Close()
		bus = nc
		js, err := nc.JetStream()
		if err != nil {
			log.Error("jetstream", zap.Error(err))
		} else {
			publisher = events.New(js, log)
		}
	}

	snapshots := cache.New(boardCfg.RedisDSN, boardCfg.CacheTTL, nc, log)
	if rc, ok := snapshots.(*cache.RedisCache); ok {
		defer func() { _ = rc.Close() }()
	}
	log.Info("comment cache", zap.Bool("redis", boardCfg.RedisDSN != ""), zap.Duration("ttl", boardCfg.CacheTTL))

	board := &handlers.Board{
		Posts:    stores.posts,
		Comments: cache.NewCachedCommentStore(stores.comments, snapshots, bus, reg, log),
		Threads:  thread.NewBuilder(log, thread.NewMetrics(reg)),
		Events:   publisher,
		Log:      log,
	}
	if boardCfg.WritesPerMinute > 0 {
		board.Writes = httpserver.NewRateLimiter(float64(boardCfg.WritesPerMinute)/60, boardCfg.WriteBurst, handlers.WriterKey)
	}

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{
		ReadyFunc: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return stores.ping(ctx)
		},
		Metrics:  httpserver.NewMetrics(reg),
		Gatherer: reg,
	})
	board.Routes(r, auth.JWTVerifier{Secret: []byte(boardCfg.JWTSecret)})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	lis, err := net.Listen("tcp", boardCfg.GRPCAddr)
	if err != nil {
		log.Error("grpc listen", zap.Error(err))
		run.Exit(1)
	}
	grpcSrv, health := grpcapi.NewServer()

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			log.Info("grpc server starting", zap.String("addr", boardCfg.GRPCAddr))
			return grpcSrv.Serve(lis)
		})
		g.Go(func() error {
			grpcapi.WatchReadiness(gctx, health, stores.ping, boardCfg.ReadyEvery, log)
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			stopped := make(chan struct{})
			go func() {
				grpcSrv.GracefulStop()
				close(stopped)
			}()
			select {
			case <-stopped:
			case <-time.After(10 * time.Second):
				grpcSrv.Stop()
			}
			return run.Graceful(srv.Shutdown)
		})
		return g.Wait()
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

type boardStores struct {
	posts    store.PostStore
	comments store.CommentStore
	ping     func(context.Context) error
	close    func()
}

// initStores selects the storage backend.
// In production (APP_ENV=production) it requires a working Postgres connection
// and terminates the process otherwise.
func initStores(log *zap.Logger, dsn string, isProd bool) boardStores {
	memory := boardStores{
		posts:    store.NewInMemoryPostStore(),
		comments: store.NewInMemoryCommentStore(),
		ping:     func(context.Context) error { return nil },
	}

	if dsn == "" {
		if isProd {
			log.Error("DATABASE_URL is required in production")
			_ = log.Sync()
			os.Exit(1)
		}
		log.Warn("DATABASE_URL not set, using in-memory stores (development only)")
		return memory
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Open(ctx, dsn)
	if err != nil {
		if isProd {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			os.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory stores", zap.Error(err))
		return memory
	}
	if err := store.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Error("postgres migrate", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info("board stores: postgres")
	return boardStores{
		posts:    store.NewPostgresPostStore(pool),
		comments: store.NewPostgresCommentStore(pool),
		ping:     pool.Ping,
		close:    pool.Close,
	}
}
