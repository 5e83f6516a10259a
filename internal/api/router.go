package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Investment-Admin-Console/internal/api/middleware"
	"github.com/ndewijer/Investment-Admin-Console/internal/config"
	"github.com/ndewijer/Investment-Admin-Console/internal/pricefeed"
	"github.com/ndewijer/Investment-Admin-Console/internal/service"
	"github.com/ndewijer/Investment-Admin-Console/internal/session"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	sessions *session.Manager,
	dashboardService *service.DashboardService,
	investmentService *service.InvestmentService,
	prices *pricefeed.Buffer,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		sessionHandler := handlers.NewSessionHandler(sessions)
		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.Status)
			r.Post("/login", sessionHandler.Login)
			r.Post("/logout", sessionHandler.Logout)
		})

		// Everything below requires an open admin session.
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireSession(sessions))

			dashboardHandler := handlers.NewDashboardHandler(dashboardService)
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", dashboardHandler.Dashboard)
				r.Post("/reload", dashboardHandler.Reload)
			})
			r.Get("/user", dashboardHandler.Users)

			r.Route("/investment", func(r chi.Router) {
				investmentHandler := handlers.NewInvestmentHandler(investmentService)
				r.Get("/", investmentHandler.Investments)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateRecordIDMiddleware)
					r.Get("/", investmentHandler.GetInvestment)
					r.Delete("/", investmentHandler.DeleteInvestment)
					r.Post("/approve", investmentHandler.ApproveInvestment)
					r.Post("/settle", investmentHandler.SettleInvestment)
					r.Post("/cancel", investmentHandler.CancelInvestment)
				})
			})

			priceHandler := handlers.NewPriceHandler(prices)
			r.Get("/price", priceHandler.Price)
		})
	})

	return r
}
