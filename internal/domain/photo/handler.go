package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/pkg/imaging"
	"github.com/roomly/roomly-api/internal/pkg/response"
)

// Handler handles photo HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates photo handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /photos/space/{id} (multipart)
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	if err := r.ParseMultipartForm(imaging.MaxFileSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Missing photo file")
		return
	}
	defer file.Close()

	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetRole(r.Context())

	p, err := h.service.Upload(r.Context(), actorID, actorRole, spaceID, header.Filename, file, header.Size)
	if err != nil {
		switch err {
		case ErrSpaceNotFound:
			response.NotFound(w, "Space not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not the owner of this space")
		case ErrInvalidFile:
			response.BadRequest(w, "Unsupported or corrupt image file")
		case ErrTooLarge:
			response.BadRequest(w, "Image file too large")
		case ErrTooMany:
			response.Conflict(w, "Photo limit reached for this space")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, p)
}

// List handles GET /photos/space/{id}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	photos, err := h.service.List(r.Context(), spaceID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, photos)
}

// Delete handles DELETE /photos/{photoID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetRole(r.Context())

	if err := h.service.Delete(r.Context(), actorID, actorRole, photoID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

// SetCover handles POST /photos/{photoID}/cover
func (h *Handler) SetCover(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetRole(r.Context())

	if err := h.service.SetCover(r.Context(), actorID, actorRole, photoID); err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// Reorder handles PUT /photos/space/{id}/order
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	var req struct {
		PhotoIDs []uuid.UUID `json:"photo_ids"`
	}
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(req.PhotoIDs) == 0 {
		response.BadRequest(w, "photo_ids is required")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetRole(r.Context())

	if err := h.service.Reorder(r.Context(), actorID, actorRole, spaceID, req.PhotoIDs); err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		response.NotFound(w, "Photo not found")
	case ErrSpaceNotFound:
		response.NotFound(w, "Space not found")
	case ErrNotOwner:
		response.Forbidden(w, "Not the owner of this space")
	default:
		response.InternalError(w)
	}
}
