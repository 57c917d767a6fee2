package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
)

type Router struct {
	Health    *HealthHandler
	Imports   *ImportHandler
	Leads     *LeadHandler
	Campaigns *CampaignHandler
	Settings  *SettingsHandler
	Workflows *WorkflowHandler
	LinkedIn  *LinkedInHandler

	CORSOrigins []string
}

func (rt Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Webhook-Secret"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/imports", func(r chi.Router) {
		r.Post("/parse", rt.Imports.Parse)
		r.Post("/commit", rt.Imports.Commit)
		r.Post("/rows/edit", rt.Imports.EditRow)
	})

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", rt.Leads.List)
		r.Get("/{id}", rt.Leads.Get)
		r.Patch("/{id}", rt.Leads.Update)
		r.Delete("/{id}", rt.Leads.Delete)
	})

	r.Get("/campaigns/stats", rt.Campaigns.Stats)
	r.Post("/campaigns/email", rt.Campaigns.SendEmail)

	r.Get("/settings/{userId}", rt.Settings.Get)
	r.Put("/settings/{userId}", rt.Settings.Put)

	r.Post("/workflows/{kind}", rt.Workflows.Trigger)

	r.Route("/linkedin", func(r chi.Router) {
		r.Post("/connect", rt.LinkedIn.Connect)
		r.Post("/sync", rt.LinkedIn.Sync)
		r.Get("/accounts", rt.LinkedIn.Accounts)
	})

	// 120 req/min por IP
	webhookLimiter := NewRateLimiter(120, time.Minute)
	r.With(webhookLimiter.Middleware).Post("/webhooks/linkedin", rt.LinkedIn.Webhook)

	return r
}
