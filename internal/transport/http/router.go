// Package httptransport assembles the full HTTP surface: web pages, the
// session-gated ping API, and the operational endpoints.
package httptransport

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pinghandler "pingmap/internal/ping/handler"
	"pingmap/internal/platform/redis"
	"pingmap/internal/session"
	"pingmap/internal/web"
	"pingmap/pkg/platform/httputil"
	"pingmap/pkg/platform/middleware/metadata"
	"pingmap/pkg/platform/middleware/requesttime"
	"pingmap/pkg/requestcontext"
)

// Deps carries everything the router mounts. DB and Redis may be nil when
// the process runs on in-memory stores; the health endpoint then skips them.
type Deps struct {
	Logger   *slog.Logger
	Web      *web.Handler
	Pings    *pinghandler.Handler
	Sessions *session.Manager
	DB       *sql.DB
	Redis    *redis.Client
}

// NewRouter wires all routes and the shared middleware chain.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requestLogger(deps.Logger))

	deps.Web.Routes(r, session.RequireAuthWeb(deps.Sessions, deps.Logger))

	r.Group(func(r chi.Router) {
		r.Use(session.RequireAuth(deps.Sessions, deps.Logger))
		deps.Pings.Routes(r)
	})

	r.Get("/healthz", healthz(deps))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogger emits one structured line per request after it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"client_ip", metadata.ClientIPFromRequest(r),
				"request_id", requestcontext.RequestID(r.Context()),
			)
		})
	}
}

func healthz(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		healthy := true

		if deps.DB != nil {
			if err := deps.DB.PingContext(r.Context()); err != nil {
				checks["postgres"] = err.Error()
				healthy = false
			} else {
				checks["postgres"] = "ok"
			}
		}
		if deps.Redis != nil {
			if err := deps.Redis.Health(r.Context()); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		state := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
