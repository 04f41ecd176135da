// Package httpapi composes the feature handlers into the service router.
// Route ownership stays with the feature packages; this package only decides
// the middleware chain and which subtrees require a bearer token.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assessmenthandler "driveguard/internal/assessment/handler"
	driverhandler "driveguard/internal/driver/handler"
	orghandler "driveguard/internal/org/handler"
	"driveguard/pkg/platform/middleware/auth"
	"driveguard/pkg/platform/middleware/metadata"
	"driveguard/pkg/platform/middleware/requesttime"
)

// Handlers collects the feature handlers the router mounts.
type Handlers struct {
	Org        *orghandler.Handler
	Driver     *driverhandler.Handler
	Assessment *assessmenthandler.Handler
}

// NewRouter builds the full API surface. Token exchange and the admin org
// endpoints are mounted outside the bearer-token chain; everything under
// /drivers requires a valid token.
func NewRouter(h Handlers, validator auth.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metadata.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Org.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(validator, logger))
		h.Driver.Register(r)
		h.Assessment.Register(r)
	})

	return r
}
