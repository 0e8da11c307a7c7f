package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ads-dashboard/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the hierarchy use case, a validator for request bodies and a
// logger for structured logging. Routes are registered on a chi.Router.
type Handler struct {
	svc      port.HierarchyUseCase
	logger   *slog.Logger
	validate *validator.Validate
	router   chi.Router
	now      func() time.Time
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.HierarchyUseCase, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{svc: svc, logger: logger, validate: newValidator(), now: time.Now}
	r := chi.NewRouter()
	r.Use(requestID, h.accessLog, instrument, middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Patch("/", h.handleUpdateCampaign)
				r.Delete("/", h.handleDeleteCampaign)
				r.Get("/ad-sets", h.handleListAdSetsByCampaign)
			})
		})
		r.Route("/ad-sets", func(r chi.Router) {
			r.Post("/", h.handleCreateAdSet)
			r.Get("/", h.handleListAdSets)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetAdSet)
				r.Patch("/", h.handleUpdateAdSet)
				r.Delete("/", h.handleDeleteAdSet)
				r.Get("/ads", h.handleListAdsByAdSet)
			})
		})
		r.Route("/ads", func(r chi.Router) {
			r.Post("/", h.handleCreateAd)
			r.Get("/", h.handleListAds)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetAd)
				r.Patch("/", h.handleUpdateAd)
				r.Delete("/", h.handleDeleteAd)
			})
		})
		r.Get("/dashboard/summary", h.handleSummary)
		r.Get("/reports/hierarchy.xlsx", h.handleHierarchyReport)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
