// Package http provides the HTTP delivery layer for the link shortener.
// It contains the router, request handlers and related types used for
// processing incoming requests, validating input, and formatting responses.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes a chi router with the redirect endpoint at the root
// and the management API under /api/v1. A nil limiter disables rate limiting.
func NewRouter(logger *httplog.Logger, useCase linkUseCase, verifier TokenVerifier, limiter RequestLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(withRateLimit(limiter))

	h := newLinkHandler(useCase, newValidator())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(withPrincipal(verifier))

		r.Get("/ping", handlePing)

		r.Route("/shorten", func(r chi.Router) {
			r.Post("/", h.shortenLink)
			r.Get("/search", h.searchLinks)

			r.Route("/{shortCode}", func(r chi.Router) {
				r.Put("/", h.modifyLink)
				r.Delete("/", h.deactivateLink)
				r.Get("/stats", h.getLinkStats)
			})
		})
	})

	// The redirect lives at the root so short links stay short.
	r.Get("/{shortCode}", h.redirect)

	return r
}
