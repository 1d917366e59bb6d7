// Package httptransport assembles the HTTP surface. It owns routing and
// middleware order; all business logic lives in the domain handlers.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "propertyhub/internal/auth/handler"
	ownerhandler "propertyhub/internal/owner/handler"
	paymenthandler "propertyhub/internal/payment/handler"
	"propertyhub/internal/platform/middleware"
	propertyhandler "propertyhub/internal/property/handler"
	jsonResponse "propertyhub/internal/transport/http/json"
	"propertyhub/pkg/domain"
)

// Handlers collects the domain handlers the router mounts.
type Handlers struct {
	Auth     *authhandler.Handler
	Owner    *ownerhandler.Handler
	Property *propertyhandler.Handler
	Payment  *paymenthandler.Handler
}

// HealthChecker reports readiness of a backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter wires all endpoints with the middleware stack. Protected routes
// sit behind token validation; owner and admin surfaces add a role check on
// top.
func NewRouter(h Handlers, decoder middleware.TokenDecoder, logger *slog.Logger, health HealthChecker) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Device)

	r.Get("/healthz", handleHealth(health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Auth.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(decoder, logger))

		h.Auth.RegisterProtected(r)
		h.Payment.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logger, domain.RoleOwner, domain.RoleAdmin))
			h.Property.Register(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logger, domain.RoleAdmin))
			h.Owner.Register(r)
			h.Payment.RegisterAdmin(r)
		})
	})

	return r
}

func handleHealth(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.Health(r.Context()); err != nil {
				jsonResponse.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		jsonResponse.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
