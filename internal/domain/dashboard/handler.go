package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Stats handles GET /dashboard/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetUserID(r.Context())

	stats, err := h.service.CompanyStats(r.Context(), companyID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, stats)
}

// Routes returns dashboard routes; company role required
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware, middleware.RequireCompany())
	r.Get("/stats", h.Stats)

	return r
}
