package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/odra/finbook/internal/adapter/http/handler"
	"github.com/odra/finbook/internal/adapter/http/middleware"
	"github.com/odra/finbook/internal/infrastructure/metrics"
)

// RouterConfig holds the dependencies for building the router.
type RouterConfig struct {
	Logger  zerolog.Logger
	Metrics *metrics.Metrics

	Accounts     *handler.AccountHandler
	Transactions *handler.TransactionHandler
	Recurring    *handler.RecurringHandler
	Daily        *handler.DailyHandler
	Debts        *handler.DebtHandler
	Goals        *handler.GoalHandler
	Health       *handler.HealthHandler
}

// NewRouter builds the HTTP router. Everything under /api/v1 requires the
// owner header; probes and metrics do not.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	r.Use(middleware.Recovery)

	r.Get("/health", cfg.Health.Liveness)
	r.Get("/ready", cfg.Health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Owner)

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.Accounts.Create)
			r.Get("/", cfg.Accounts.List)
			r.Get("/{id}", cfg.Accounts.Get)
			r.Put("/{id}", cfg.Accounts.Update)
			r.Delete("/{id}", cfg.Accounts.Deactivate)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.Transactions.Create)
			r.Get("/", cfg.Transactions.List)
			r.Put("/{id}", cfg.Transactions.Update)
			r.Delete("/{id}", cfg.Transactions.Delete)
		})

		r.Route("/recurring", func(r chi.Router) {
			r.Post("/", cfg.Recurring.Create)
			r.Get("/", cfg.Recurring.List)
			r.Get("/{id}", cfg.Recurring.Get)
			r.Put("/{id}", cfg.Recurring.Update)
			r.Delete("/{id}", cfg.Recurring.Delete)
		})

		r.Route("/daily", func(r chi.Router) {
			r.Get("/status", cfg.Daily.Status)
			r.Post("/close", cfg.Daily.Close)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Post("/", cfg.Debts.Create)
			r.Get("/", cfg.Debts.List)
			r.Post("/{id}/payments", cfg.Debts.RegisterPayment)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Post("/", cfg.Goals.Create)
			r.Get("/", cfg.Goals.List)
		})
	})

	return r
}
