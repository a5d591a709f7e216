package booking

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/pkg/response"
	"github.com/roomly/roomly-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch err {
		case ErrSpaceNotFound:
			response.NotFound(w, "Space not found")
		case ErrNotApproved:
			response.BadRequest(w, "Space is not open for booking")
		case ErrNoSlots:
			response.BadRequest(w, "No slots selected")
		case ErrSlotUnknown:
			response.BadRequest(w, "Selected slot is outside the space's availability")
		case ErrSlotTaken:
			response.Conflict(w, "Selected slot is already booked")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetRole(r.Context())

	result, err := h.service.Get(r.Context(), actorID, actorRole, id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Booking not found")
		case ErrAccessDenied:
			response.Forbidden(w, "No access to this booking")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// ListMine handles GET /bookings
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, offset, page := parsePaging(r)

	bookings, total, err := h.service.ListMine(r.Context(), userID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, bookings, response.NewMeta(total, page, limit))
}

// ListForCompany handles GET /bookings/company
func (h *Handler) ListForCompany(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetUserID(r.Context())
	limit, offset, page := parsePaging(r)

	bookings, total, err := h.service.ListForCompany(r.Context(), companyID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, bookings, response.NewMeta(total, page, limit))
}

// Cancel handles POST /bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetRole(r.Context())

	if err := h.service.Cancel(r.Context(), actorID, actorRole, id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Booking not found")
		case ErrAccessDenied:
			response.Forbidden(w, "No access to this booking")
		case ErrAlreadyDone:
			response.Conflict(w, "Booking already cancelled")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

func parsePaging(r *http.Request) (limit, offset, page int) {
	page = 1
	limit = 20
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	offset = (page - 1) * limit
	return limit, offset, page
}
