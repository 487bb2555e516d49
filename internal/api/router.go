package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coopera/savings-backend/internal/api/handlers"
	"github.com/coopera/savings-backend/internal/config"
	"github.com/coopera/savings-backend/internal/middleware"
)

func NewRouter(cfg config.Config, h *handlers.API, auth *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/me", h.Me)
			r.Get("/personal-savings", h.PersonalSavings)
			r.Get("/notifications", h.Notifications)

			r.Route("/savings-goals", func(r chi.Router) {
				r.Post("/", h.CreateGoal)
				r.Get("/", h.ListGoals)
				r.Get("/{id}", h.GetGoal)
				r.Post("/{id}/transactions", h.ApplyTransaction)
				r.Get("/{id}/transactions", h.ListTransactions)
				r.Post("/{id}/add-funds", h.AddFunds)
			})
		})
	})

	return r
}
