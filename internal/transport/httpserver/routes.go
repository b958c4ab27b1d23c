package httpserver

import (
	"net/http"
	"time"

	"gold-day-go/internal/config"
	"gold-day-go/internal/transport/httpserver/handler"
	corsmw "gold-day-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(corsmw.NewCORS(cfg.AllowedOrigins))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Get("/groups", handlers.ListGroups)
		r.Post("/groups", handlers.CreateGroup)
		r.Get("/groups/default", handlers.GetDefaultGroup)
		r.Get("/groups/by-code/{code}", handlers.GetGroupByCode)
		r.Get("/groups/{group_id}", handlers.GetGroup)
		r.Put("/groups/{group_id}/rotation-drawn", handlers.SetRotationDrawn)

		r.Get("/groups/{group_id}/members", handlers.ListMembers)
		r.Post("/groups/{group_id}/members", handlers.AddMember)
		r.Patch("/members/{member_id}", handlers.RenameMember)
		r.Delete("/members/{member_id}", handlers.RemoveMember)

		r.Get("/groups/{group_id}/assignments", handlers.ListAssignments)
		r.Post("/groups/{group_id}/redraw", handlers.Redraw)
		r.Post("/groups/{group_id}/manual-draw", handlers.ManualDraw)
		r.Post("/groups/{group_id}/assignments/prune", handlers.PruneAssignments)
		r.Post("/groups/{group_id}/payments/reset", handlers.ResetPayments)
		r.Put("/assignments/{assignment_id}/payments/{member_id}", handlers.SetPayment)
		r.Put("/assignments/{assignment_id}/delivery-date", handlers.SetDeliveryDate)

		r.Get("/gold-price", handlers.GetGoldPrice)
		r.Post("/gold-price/refresh", handlers.RefreshGoldPrice)
	})

	return r
}
