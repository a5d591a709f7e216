package payment

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/pkg/response"
)

// Handler handles payment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// StartCheckout handles POST /payments/bookings/{id}/checkout
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	// body is optional, email only improves the hosted page
	_ = response.DecodeJSON(r.Body, &req)

	userID := middleware.GetUserID(r.Context())

	result, err := h.service.StartCheckout(r.Context(), userID, bookingID, req.Email)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case ErrNotYourBooking:
			response.Forbidden(w, "Not your booking")
		case ErrAlreadyPaid:
			response.Conflict(w, "Booking already paid")
		case ErrNotPayable:
			response.BadRequest(w, "Booking cannot be paid")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{
		"payment_url": result.PaymentURL,
		"order_id":    result.OrderID,
	})
}

// Callback handles POST /webhooks/checkout (form-encoded)
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	orderID, err := h.service.HandleCallback(r.Context(), r.PostForm)
	if err != nil {
		switch err {
		case ErrBadSignature:
			http.Error(w, "bad sign", http.StatusForbidden)
		case ErrMalformedPayload:
			http.Error(w, "bad request", http.StatusBadRequest)
		case ErrAmountMismatch:
			http.Error(w, "bad amount", http.StatusBadRequest)
		case ErrBookingNotFound:
			http.Error(w, "unknown order", http.StatusNotFound)
		default:
			http.Error(w, "error", http.StatusInternalServerError)
		}
		return
	}

	// the gateway expects a plain OK<OrderID> acknowledgement
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "OK%s", orderID)
}

// Routes returns authenticated payment routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Post("/bookings/{id}/checkout", h.StartCheckout)

	return r
}

// WebhookRoutes returns unauthenticated gateway callbacks
func (h *Handler) WebhookRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/checkout", h.Callback)

	return r
}
