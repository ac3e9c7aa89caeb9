// Package httpapi assembles the public HTTP surface: middleware chain,
// compliance routes, health, and metrics.
package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"complytrack/internal/compliance/handler"
	"complytrack/internal/platform/redis"
	"complytrack/pkg/platform/httputil"
	"complytrack/pkg/platform/middleware/metadata"
	"complytrack/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router needs. Database and Redis may be nil
// when running against in-memory backends; health reporting reflects that.
type Deps struct {
	Compliance *handler.Handler
	Database   *sql.DB
	Redis      *redis.Client
}

// NewRouter wires all public endpoints. Compliance routes require a tenant
// scope; health and metrics do not.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requesttime.Middleware)
	r.Use(metadata.RequestID)

	r.Get("/healthz", handleHealth(deps))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(metadata.TenantScope)
		deps.Compliance.Register(r)
	})

	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "ok"}
		status := http.StatusOK

		if deps.Database != nil {
			if err := deps.Database.PingContext(r.Context()); err != nil {
				body["status"] = "degraded"
				body["database"] = "unreachable"
				status = http.StatusServiceUnavailable
			} else {
				body["database"] = "ok"
			}
		}
		if deps.Redis != nil {
			if err := deps.Redis.Health(r.Context()); err != nil {
				body["status"] = "degraded"
				body["redis"] = "unreachable"
				status = http.StatusServiceUnavailable
			} else {
				body["redis"] = "ok"
			}
		}

		httputil.WriteJSON(w, status, body)
	}
}
