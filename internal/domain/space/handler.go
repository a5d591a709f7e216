package space

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/pkg/response"
	"github.com/roomly/roomly-api/internal/pkg/validator"
)

// Handler handles space HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates space handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /spaces
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Create(r.Context(), companyID, req)
	if err != nil {
		switch err {
		case ErrInvalidInput:
			response.BadRequest(w, "Invalid space data")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Get handles GET /spaces/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	viewerRole := middleware.GetRole(r.Context())

	result, err := h.service.Get(r.Context(), id, viewerID, viewerRole)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Space not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// List handles GET /spaces
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		City:   r.URL.Query().Get("city"),
		Search: r.URL.Query().Get("search"),
	}
	if v := r.URL.Query().Get("min_capacity"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinCapacity = n
		}
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = f
		}
	}

	sort := SortBy(r.URL.Query().Get("sort"))
	page := parsePagination(r)

	spaces, total, err := h.service.List(r.Context(), filter, sort, page)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, spaces, response.NewMeta(total, page.Page, page.Limit))
}

// ListMine handles GET /spaces/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetUserID(r.Context())
	page := parsePagination(r)

	spaces, total, err := h.service.ListMine(r.Context(), companyID, page)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, spaces, response.NewMeta(total, page.Page, page.Limit))
}

// Update handles PUT /spaces/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetRole(r.Context())

	result, err := h.service.Update(r.Context(), actorID, actorRole, id, req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Space not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not the owner of this space")
		case ErrInvalidInput:
			response.BadRequest(w, "Invalid space data")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Delete handles DELETE /spaces/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetRole(r.Context())

	if err := h.service.Delete(r.Context(), actorID, actorRole, id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Space not found")
		case ErrNotOwner:
			response.Forbidden(w, "Not the owner of this space")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// MonthAvailability handles GET /spaces/{id}/availability
func (h *Handler) MonthAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 2000 && n <= 2100 {
			year = n
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			response.BadRequest(w, "Invalid month")
			return
		}
		month = n
	}

	statuses, err := h.service.MonthAvailability(r.Context(), id, year, time.Month(month))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Space not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{
		"year":  year,
		"month": month,
		"days":  statuses,
	})
}

// DateSlots handles GET /spaces/{id}/slots
func (h *Handler) DateSlots(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	date := r.URL.Query().Get("date")
	if err := validator.ValidateVar(date, "required,datekey"); err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		return
	}

	result, err := h.service.SlotsForDate(r.Context(), id, date)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Space not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

func parsePagination(r *http.Request) Pagination {
	page := Pagination{Page: 1, Limit: 20}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			page.Limit = n
		}
	}
	return page
}
