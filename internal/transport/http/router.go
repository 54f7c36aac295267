// Package httptransport assembles the full HTTP surface: public sign-up and
// viewer routes, the admin-gated editor/statistics/export routes, and the
// operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regportal/internal/auth"
	"regportal/internal/content"
	"regportal/internal/platform/middleware"
	registrationhandler "regportal/internal/registration/handler"
	"regportal/internal/siteconfig"
)

// Deps are the handlers and services the router wires together.
type Deps struct {
	Logger       *slog.Logger
	Auth         *auth.Service
	AuthHandler  *auth.Handler
	Registration *registrationhandler.Handler
	Content      *content.Handler
	SiteConfig   *siteconfig.Handler
}

// NewRouter builds the chi router with the shared middleware chain and all
// module routes mounted.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(d.Logger))

	// Public surface.
	d.Registration.Register(r)
	d.Content.Register(r)
	d.SiteConfig.Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/admin", func(r chi.Router) {
		// Login stays outside the gate; everything else requires a valid
		// session token.
		d.AuthHandler.Register(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(d.Auth, d.Logger))
			d.Registration.RegisterAdmin(r)
			d.Content.RegisterAdmin(r)
			d.SiteConfig.RegisterAdmin(r)
		})
	})

	return r
}
