package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Recover, mw.Cors, mw.Log)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.ListOrders)
				r.Post("/", h.CreateOrder)
				r.Put("/{id}/status", h.SetOrderStatus)
				r.Get("/{id}/print", h.PrintOrder)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", h.ListClients)
				r.Post("/", h.CreateClient)
				r.Put("/{id}", h.UpdateClient)
				r.Delete("/{id}", h.DeleteClient)
			})

			// Finance, reports, settings and backups are ADMIN-only views.
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin)

				r.Get("/finance", h.Finance)
				r.Get("/reports", h.Reports)
				r.Get("/settings", h.Settings)
				r.Put("/settings/nfs-link", h.UpdateNFSLink)
				r.Put("/settings/account", h.UpdateAccount)
				r.Get("/backup", h.Backup)
				r.Post("/restore", h.Restore)
			})
		})
	})

	return mux
}
