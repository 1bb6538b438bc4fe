// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cordialhq/cordial/internal/auth"
	"github.com/cordialhq/cordial/internal/config"
	"github.com/cordialhq/cordial/internal/middleware"
)

// Router wires handlers, auth, and middleware into a chi mux.
type Router struct {
	handler      *Handler
	authMW       *auth.Middleware
	authHandlers *auth.Handlers
	cfg          *config.Config
}

// NewRouter constructs the router from its already-built parts.
func NewRouter(handler *Handler, authMW *auth.Middleware, authHandlers *auth.Handlers, cfg *config.Config) *Router {
	return &Router{
		handler:      handler,
		authMW:       authMW,
		authHandlers: authHandlers,
		cfg:          cfg,
	}
}

// Setup configures all HTTP routes.
//
// The catalog surface is registered with HandleFunc rather than
// method-specific registrations: wrong-method requests must produce the
// JSON refusal body, not chi's bare 405.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.PrometheusMetrics)

	r.Handle("/metrics", promhttp.Handler())

	// Permissive rate limiting for health probes: monitoring polls often.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Strict rate limiting on auth endpoints. Login carries its own
	// per-IP token bucket on top of this.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(30, time.Minute))
		r.Post("/login", router.authHandlers.Login)
		r.Post("/logout", router.authHandlers.Logout)
	})

	// Catalog browsing is open to anonymous visitors.
	r.With(router.authMW.ResolveUser).Get("/cocktails/", router.handler.CocktailBrowse)

	// Everything that reads or mutates a user's lists requires a signed-in
	// user; anonymous requests are redirected to the sign-in page.
	r.Group(func(r chi.Router) {
		r.Use(router.authMW.RequireUser)
		r.Use(httprate.LimitByIP(300, time.Minute))

		r.HandleFunc("/cocktails/{cocktailID}/favorite/", router.handler.FavoriteToggle)
		r.HandleFunc("/cocktails/{cocktailID}/lists/{listID}/add/", router.handler.MemberAdd)
		r.HandleFunc("/cocktails/{cocktailID}/lists/{listID}/remove/", router.handler.MemberRemove)
		r.HandleFunc("/cocktails/{cocktailID}/anonymize/", router.handler.CocktailAnonymize)
		r.Post("/cocktails/", router.handler.CocktailCreate)

		r.HandleFunc("/lists/create/", router.handler.ListCreate)
		r.HandleFunc("/lists/{listID}/bulk/", router.handler.Bulk)
		r.HandleFunc("/lists/{listID}/edit/", router.handler.ListEdit)
		r.HandleFunc("/lists/{listID}/delete/", router.handler.ListDelete)
		r.HandleFunc("/lists/", router.handler.ListIndex)
		r.HandleFunc("/lists/{listID}/", router.handler.ListDetail)
	})

	return r
}
