package payment

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/roomly/roomly-api/internal/domain/booking"
	"github.com/roomly/roomly-api/internal/pkg/checkout"
)

// BookingStore is the slice of the booking repository payments need
type BookingStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, payment booking.PaymentStatus, status booking.Status) error
}

// Service drives the hosted checkout flow for bookings
type Service struct {
	bookings BookingStore
	client   *checkout.Client
	secret2  string
}

// NewService creates payment service
func NewService(bookings BookingStore, client *checkout.Client, secret2 string) *Service {
	return &Service{bookings: bookings, client: client, secret2: secret2}
}

// StartCheckout builds a signed payment URL for a pending booking
func (s *Service) StartCheckout(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID, email string) (*checkout.CreatePaymentResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, ErrNotYourBooking
	}
	if b.PaymentStatus == booking.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status == booking.StatusCancelled {
		return nil, ErrNotPayable
	}

	resp, err := s.client.CreatePayment(ctx, checkout.CreatePaymentRequest{
		Amount:      b.TotalPrice,
		OrderID:     b.ID.String(),
		Description: fmt.Sprintf("Workspace booking %s", b.Date),
		Email:       email,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Float64("amount", b.TotalPrice).
		Msg("Checkout started")

	return resp, nil
}

// HandleCallback processes the gateway's result callback. On a valid
// signature the booking becomes paid and confirmed.
func (s *Service) HandleCallback(ctx context.Context, form url.Values) (string, error) {
	payload, err := checkout.ParseWebhookForm(form)
	if err != nil {
		return "", ErrMalformedPayload
	}

	if !checkout.VerifyResultSignature(payload.Amount, payload.OrderID, payload.Signature, s.secret2) {
		log.Warn().Str("order_id", payload.OrderID).Msg("Checkout callback with bad signature")
		return "", ErrBadSignature
	}

	bookingID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return "", ErrMalformedPayload
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return "", fmt.Errorf("get booking: %w", err)
	}
	if b == nil {
		return "", ErrBookingNotFound
	}

	// a valid signature only proves the gateway sent this amount, not
	// that it matches what the booking costs
	if !checkout.AmountMatches(payload.Amount, b.TotalPrice) {
		log.Warn().
			Str("order_id", payload.OrderID).
			Str("amount", payload.Amount).
			Float64("expected", b.TotalPrice).
			Msg("Checkout callback amount mismatch")
		return "", ErrAmountMismatch
	}

	// callbacks are retried by the gateway, repeat deliveries are OK
	if b.PaymentStatus == booking.PaymentPaid {
		return payload.OrderID, nil
	}

	if err := s.bookings.UpdatePaymentStatus(ctx, bookingID, booking.PaymentPaid, booking.StatusConfirmed); err != nil {
		return "", fmt.Errorf("mark paid: %w", err)
	}

	log.Info().Str("booking_id", bookingID.String()).Msg("Booking paid and confirmed")
	return payload.OrderID, nil
}
