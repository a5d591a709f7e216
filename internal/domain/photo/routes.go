package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roomly/roomly-api/internal/middleware"
)

// Routes returns photo routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/space/{id}", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, middleware.RequireCompany())
		r.Post("/space/{id}", h.Upload)
		r.Put("/space/{id}/order", h.Reorder)
		r.Post("/{photoID}/cover", h.SetCover)
		r.Delete("/{photoID}", h.Delete)
	})

	return r
}
