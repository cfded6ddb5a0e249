// Package grpcapi exposes the board's gRPC surface: the standard health
// service, kept in step with the HTTP readiness probe, and reflection.
package grpcapi

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health entry readiness is reported under.
const ServiceName = "board.v1.Board"

// NewServer builds a gRPC server with health and reflection registered.
// The board service starts NOT_SERVING until WatchReadiness flips it.
func NewServer(opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(opts...)
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)
	return srv, hs
}

// WatchReadiness runs check every interval and mirrors the result into hs
// until ctx is done, then marks everything NOT_SERVING.
func WatchReadiness(ctx context.Context, hs *health.Server, check func(context.Context) error, every time.Duration, log *zap.Logger) {
	if every <= 0 {
		every = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	last := healthpb.HealthCheckResponse_UNKNOWN
	probe := func() {
		status := healthpb.HealthCheckResponse_SERVING
		cctx, cancel := context.WithTimeout(ctx, every)
		err := check(cctx)
		cancel()
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		if status != last {
			log.Info("grpc health changed", zap.String("service", ServiceName), zap.Stringer("status", status), zap.Error(err))
			last = status
		}
		hs.SetServingStatus(ServiceName, status)
	}

	probe()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-t.C:
			probe()
		}
	}
}
