package web

import (
	"time"

	"github.com/RealRedbaron07/scoutlens-app/controller"
	"github.com/RealRedbaron07/scoutlens-app/metrics"
	"github.com/RealRedbaron07/scoutlens-app/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(notFoundHandler(render))

	r.Group(func(r chi.Router) {
		// Set a timeout value on the request context (ctx), that will signal
		// through ctx.Done() that the request has timed out and further
		// processing should be stopped.
		r.Use(middleware.Timeout(10 * time.Second))

		r.Get("/", rootHandler(ctrl, render))
		r.Get("/player_data.js", playerDataJSHandler(ctrl, render))
		r.Method("GET", "/metrics", metrics.Handler())

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
			if opts.Limiter != nil {
				r.Use(ratelimit.Middleware(opts.Limiter, opts.RateWindow, ratelimit.ClientIP))
			}

			r.Get("/players", playersHandler(ctrl, render))
			r.Get("/players/{key}/history", playerHistoryHandler(ctrl, render))
			r.Get("/rumors", rumorsHandler(ctrl, render))
			r.Get("/runs", runsHandler(ctrl, render))
		})
	})

	if opts.AdminUser != "" && opts.AdminPassword != "" {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.BasicAuth("scoutlens", map[string]string{opts.AdminUser: opts.AdminPassword}))
			// A refresh walks every league of a source, one request at a time.
			r.Use(middleware.Timeout(15 * time.Minute))

			r.Post("/refresh", refreshHandler(ctrl, render))
		})
	}

	return r
}
