package favorite

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/pkg/response"
)

// Handler exposes the favorites HTTP API
type Handler struct {
	service *Service
}

// NewHandler creates favorites handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Add handles POST /favorites/{spaceID}
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(chi.URLParam(r, "spaceID"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	fav, err := h.service.Add(r.Context(), userID, spaceID)
	switch {
	case err == ErrSpaceNotFound:
		response.NotFound(w, "Space not found")
	case err != nil:
		response.InternalError(w)
	default:
		response.Created(w, fav)
	}
}

// Remove handles DELETE /favorites/{spaceID}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(chi.URLParam(r, "spaceID"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	if err := h.service.Remove(r.Context(), userID, spaceID); err != nil {
		response.InternalError(w)
		return
	}
	response.NoContent(w)
}

// Check handles GET /favorites/{spaceID}/check
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	spaceID, err := uuid.Parse(chi.URLParam(r, "spaceID"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	favorited, err := h.service.IsFavorited(r.Context(), userID, spaceID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]bool{"favorited": favorited})
}

// List handles GET /favorites
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, total, err := h.service.List(r.Context(), userID, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.WithMeta(w, entries, response.NewMeta(total, page, limit))
}

// Routes mounts the favorites API. All endpoints require auth.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/{spaceID}", h.Add)
	r.Delete("/{spaceID}", h.Remove)
	r.Get("/{spaceID}/check", h.Check)

	return r
}
