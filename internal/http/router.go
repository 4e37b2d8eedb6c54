// Package httpapi assembles the public HTTP surface: shared middleware,
// health and metrics endpoints, and the authenticated case note routes.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"casenotes/internal/platform/metrics"
	"casenotes/pkg/platform/httputil"
	"casenotes/pkg/platform/middleware/auth"
	"casenotes/pkg/platform/middleware/metadata"
	request "casenotes/pkg/platform/middleware/request"
	"casenotes/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// Routes is implemented by every domain handler.
type Routes interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators of the router.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Validator auth.JWTValidator
	Health    map[string]HealthCheck
	Handlers  []Routes
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(d.Logger))
	r.Use(requesttime.Middleware)
	if d.Metrics != nil {
		r.Use(metrics.LatencyMiddleware(d.Metrics))
	}

	r.Get("/health", handleHealth(d.Health))
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(api chi.Router) {
		api.Use(chimw.Timeout(requestTimeout))
		api.Use(auth.RequireAuth(d.Validator, d.Logger))
		for _, h := range d.Handlers {
			h.Register(api)
		}
	})
	return r
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				components[name] = "DOWN"
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "UP"
		}
		overall := "UP"
		if status != http.StatusOK {
			overall = "DOWN"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status":     overall,
			"components": components,
		})
	}
}
