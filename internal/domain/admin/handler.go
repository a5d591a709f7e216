package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/domain/space"
	"github.com/roomly/roomly-api/internal/domain/user"
	"github.com/roomly/roomly-api/internal/pkg/response"
	"github.com/roomly/roomly-api/internal/pkg/validator"
)

// Handler exposes the admin panel HTTP API
type Handler struct {
	service *Service
}

// NewHandler creates admin handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login authenticates an admin and returns a panel token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == ErrInvalidCredentials:
		response.Unauthorized(w, "Invalid email or password")
	case err == ErrInactive:
		response.Forbidden(w, "Account is deactivated")
	case err != nil:
		response.InternalError(w)
	default:
		response.OK(w, map[string]interface{}{
			"token": result.Token,
			"admin": ToResponse(result.Admin),
		})
	}
}

// Me returns the authenticated admin account
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	adminID := GetAdminID(r.Context())
	if adminID == uuid.Nil {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	a, err := h.service.GetAdminByID(r.Context(), adminID)
	if err != nil || a == nil {
		response.NotFound(w, "Admin not found")
		return
	}
	response.OK(w, ToResponse(a))
}

// PendingSpaces returns the moderation queue
func (h *Handler) PendingSpaces(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	spaces, total, err := h.service.ListPendingSpaces(r.Context(), page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.WithMeta(w, spaces, response.NewMeta(total, page, limit))
}

// ApproveSpace publishes a listing
func (h *Handler) ApproveSpace(w http.ResponseWriter, r *http.Request) {
	adminID := GetAdminID(r.Context())

	spaceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	switch err := h.service.ApproveSpace(r.Context(), adminID, spaceID); {
	case err == ErrSpaceNotFound:
		response.NotFound(w, "Space not found")
	case err != nil:
		response.InternalError(w)
	default:
		response.OK(w, map[string]string{"status": string(space.StatusApproved)})
	}
}

// RejectSpace declines a listing
func (h *Handler) RejectSpace(w http.ResponseWriter, r *http.Request) {
	adminID := GetAdminID(r.Context())

	spaceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	var req RejectRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	switch err := h.service.RejectSpace(r.Context(), adminID, spaceID, req.Reason); {
	case err == ErrReasonRequired:
		response.BadRequest(w, "Rejection reason is required")
	case err == ErrSpaceNotFound:
		response.NotFound(w, "Space not found")
	case err != nil:
		response.InternalError(w)
	default:
		response.OK(w, map[string]string{"status": string(space.StatusRejected)})
	}
}

// Users lists registered accounts
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	users, total, err := h.service.ListUsers(r.Context(), page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.WithMeta(w, users, response.NewMeta(total, page, limit))
}

// BlockUser suspends an account
func (h *Handler) BlockUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, user.StatusBlocked)
}

// UnblockUser restores an account
func (h *Handler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, user.StatusActive)
}

func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request, status user.Status) {
	adminID := GetAdminID(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	switch err := h.service.SetUserStatus(r.Context(), adminID, userID, status); {
	case err == ErrUserNotFound:
		response.NotFound(w, "User not found")
	case err != nil:
		response.InternalError(w)
	default:
		response.OK(w, map[string]string{"status": string(status)})
	}
}

// Stats returns the platform dashboard
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
