// Package httptransport composes the HTTP surface: public auth endpoints,
// the protected business API behind the session middleware, and the
// operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "bizcore/internal/auth/handler"
	dashboardhandler "bizcore/internal/dashboard/handler"
	inventoryhandler "bizcore/internal/inventory/handler"
	"bizcore/internal/platform/middleware"
	"bizcore/pkg/httputil"
	authmw "bizcore/pkg/middleware/auth"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router needs. Wiring happens in main; the
// router only arranges it.
type Deps struct {
	Auth      *authhandler.Handler
	Inventory *inventoryhandler.Handler
	Dashboard *dashboardhandler.Handler
	Verifier  authmw.TokenVerifier
	Identity  authmw.IdentityLoader
	Health    HealthChecker
	Logger    *slog.Logger
}

// NewRouter wires all endpoints with the middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/health", handleHealth(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		deps.Auth.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(deps.Verifier, deps.Identity, deps.Logger))
			deps.Auth.RegisterProtected(r)
			deps.Inventory.Register(r)
			deps.Dashboard.Register(r)
		})
	})

	return r
}

func handleHealth(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.Envelope{
					Success: false,
					Message: "storage unavailable",
				})
				return
			}
		}
		httputil.WriteSuccess(w, http.StatusOK, "ok", nil)
	}
}
