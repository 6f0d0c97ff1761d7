package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ugcforge/escrow-backend/internal/api/handlers"
	"github.com/ugcforge/escrow-backend/internal/config"
	"github.com/ugcforge/escrow-backend/internal/metrics"
	"github.com/ugcforge/escrow-backend/internal/middleware"
	"github.com/ugcforge/escrow-backend/internal/models"
)

type RouterDeps struct {
	Cfg         config.Config
	Auth        *middleware.AuthMiddleware
	AuthHandler *handlers.AuthHandler
	Campaigns   *handlers.CampaignsHandler
	Submissions *handlers.SubmissionsHandler
	Balances    *handlers.BalancesHandler
	Webhooks    *handlers.WebhooksHandler
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", d.AuthHandler.Register)
		r.Post("/auth/login", d.AuthHandler.Login)
		r.Post("/auth/refresh", d.AuthHandler.Refresh)

		// Webhooks authenticate via provider signature upstream, not a
		// user token.
		r.Post("/webhooks/checkout", d.Webhooks.Checkout)

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.With(middleware.RequireRole(models.RoleBrand)).Post("/campaigns", d.Campaigns.Create)

			r.Route("/submissions", func(r chi.Router) {
				r.With(middleware.RequireRole(models.RoleCreator)).Post("/", d.Submissions.Create)
				r.Get("/{id}", d.Submissions.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleBrand))
					r.Post("/{id}/approve", d.Submissions.Approve)
					r.Get("/{id}/can-approve", d.Submissions.CanApprove)
					r.Post("/{id}/reject", d.Submissions.Reject)
					r.Post("/{id}/request-revision", d.Submissions.RequestRevision)
				})
				r.With(middleware.RequireRole(models.RoleCreator)).Post("/{id}/resubmit", d.Submissions.Resubmit)
			})

			r.Get("/balances/current", d.Balances.Current)
			r.Get("/ledger", d.Balances.Ledger)
			r.With(middleware.RequireRole(models.RoleCreator)).Post("/withdrawals", d.Balances.Withdraw)
		})
	})

	return r
}
