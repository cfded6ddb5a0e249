package run

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Runner struct {
	Logger *zap.Logger
}

func New(log *zap.Logger) *Runner {
	return &Runner{Logger: log}
}

// WithSignals runs start until it returns or SIGINT/SIGTERM arrives and maps
// the outcome to a process exit code. start must honour ctx cancellation.
func (r *Runner) WithSignals(start func(ctx context.Context) error) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return r.run(ctx, start)
}

func (r *Runner) run(ctx context.Context, start func(ctx context.Context) error) int {
	errCh := make(chan error, 1)
	go func() {
		errCh <- start(ctx)
	}()

	var err error
	select {
	case <-ctx.Done():
		r.Logger.Info("shutdown signal received")
		select {
		case err = <-errCh:
		case <-time.After(shutdownTimeout):
			r.Logger.Warn("shutdown timed out")
			return 1
		}
	case err = <-errCh:
	}

	if err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return 0
	}
	r.Logger.Error("service exited with error", zap.Error(err))
	return 1
}

// Graceful calls shutdown with a fresh bounded context; the caller's ctx is
// usually already cancelled at this point.
func Graceful(shutdown func(context.Context) error) error {
	c, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return shutdown(c)
}

func Exit(code int) {
	os.Exit(code)
}
