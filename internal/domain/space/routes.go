package space

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roomly/roomly-api/internal/middleware"
)

// Routes returns space routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/availability", h.MonthAvailability)
	r.Get("/{id}/slots", h.DateSlots)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/mine", h.ListMine)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCompany())
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})

	return r
}
