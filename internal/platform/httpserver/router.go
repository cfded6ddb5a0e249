package httpserver

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/board-platform/internal/platform/api"
)

// RouterConfig tunes the common endpoints. All fields are optional.
type RouterConfig struct {
	// ReadyFunc backs /readyz; nil means always ready.
	ReadyFunc func() error
	// Metrics enables request metrics and /metrics when set.
	Metrics *Metrics
	// Gatherer served on /metrics; defaults to the global registry.
	Gatherer prometheus.Gatherer
}

// SetupRouter attaches base middlewares and common endpoints.
// IMPORTANT: must be called before registering any routes.
func SetupRouter(r chi.Router, cfg ...RouterConfig) {
	var c RouterConfig
	if len(cfg) > 0 {
		c = cfg[0]
	}

	r.Use(middleware.Recoverer)

	// Correlation / request id
	r.Use(RequestIDMiddleware("X-Request-Id"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match", "X-Request-Id"},
		ExposedHeaders:   []string{"ETag", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if c.Metrics != nil {
		r.Use(c.Metrics.Middleware)
		g := c.Gatherer
		if g == nil {
			g = prometheus.DefaultGatherer
		}
		r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}

	// Health endpoints
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if c.ReadyFunc != nil {
			if err := c.ReadyFunc(); err != nil {
				api.Unavailable(w, "NOT_READY", err.Error(), RequestIDFromContext(r.Context()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
}

// parseCORSOrigins splits a comma separated origin list; empty means "*".
func parseCORSOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
