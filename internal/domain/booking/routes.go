package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roomly/roomly-api/internal/middleware"
)

// Routes returns booking routes; all require auth
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/cancel", h.Cancel)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCompany())
		r.Get("/company", h.ListForCompany)
	})

	return r
}
