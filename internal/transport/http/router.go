// Package httptransport assembles the HTTP surface: routing, cross-cutting
// middleware, health and metrics endpoints. Handlers stay in their feature
// packages; this layer only wires them together.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sattwik999/Trust-Score-Module/internal/ratelimit"
	submissionhandler "github.com/Sattwik999/Trust-Score-Module/internal/submission/handler"
	"github.com/Sattwik999/Trust-Score-Module/pkg/platform/httputil"
	"github.com/Sattwik999/Trust-Score-Module/pkg/platform/middleware/requestmeta"
)

// HealthChecker reports readiness of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Submissions  *submissionhandler.Handler
	RequireAdmin func(http.Handler) http.Handler
	Logger       *slog.Logger

	// SubmitLimiter bounds submissions per client; nil disables limiting.
	SubmitLimiter *ratelimit.Limiter

	// Health dependencies; nil entries are skipped.
	Checks map[string]HealthChecker
}

// NewRouter builds the service router with its middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(requestmeta.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	r.Get("/", handleRoot)
	r.Get("/healthz", handleHealth(deps.Checks, deps.Logger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.Submissions.Register(r, ratelimit.Middleware(deps.SubmitLimiter), deps.RequireAdmin)

	return r
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "trust-score-module",
		"status":  "running",
	})
}

// handleHealth pings each backing dependency with a short deadline and
// reports per-dependency status. Any failure flips the response to 503.
func handleHealth(checks map[string]HealthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = "unavailable"
				continue
			}
			body[name] = "ok"
		}

		httputil.WriteJSON(w, status, body)
	}
}
