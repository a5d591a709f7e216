package payment

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/roomly/roomly-api/internal/domain/booking"
	"github.com/roomly/roomly-api/internal/pkg/checkout"
)

type stubBookings struct {
	bookings map[uuid.UUID]*booking.Booking
}

func (s *stubBookings) GetByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.bookings[id], nil
}

func (s *stubBookings) UpdatePaymentStatus(_ context.Context, id uuid.UUID, payment booking.PaymentStatus, status booking.Status) error {
	b, ok := s.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	b.PaymentStatus = payment
	b.Status = status
	return nil
}

const (
	testSecret1 = "secret-one"
	testSecret2 = "secret-two"
)

func newTestService() (*Service, *stubBookings, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	bookingID := uuid.New()
	store := &stubBookings{bookings: map[uuid.UUID]*booking.Booking{
		bookingID: {
			ID:            bookingID,
			UserID:        userID,
			Date:          "2025-03-10",
			TotalPrice:    10000,
			Status:        booking.StatusPending,
			PaymentStatus: booking.PaymentUnpaid,
		},
	}}
	client := checkout.NewClient(checkout.Config{
		MerchantID: "roomly",
		Secret1:    testSecret1,
		Secret2:    testSecret2,
		TestMode:   true,
	})
	return NewService(store, client, testSecret2), store, userID, bookingID
}

func signedForm(amount, orderID string) url.Values {
	form := url.Values{}
	form.Set("Amount", amount)
	form.Set("OrderID", orderID)
	form.Set("Signature", checkout.Sign(checkout.BuildResultSignatureBase(amount, orderID, testSecret2)))
	return form
}

func TestStartCheckout(t *testing.T) {
	svc, _, userID, bookingID := newTestService()
	ctx := context.Background()

	resp, err := svc.StartCheckout(ctx, userID, bookingID, "anna@example.com")
	if err != nil {
		t.Fatalf("start checkout: %v", err)
	}
	if resp.OrderID != bookingID.String() {
		t.Errorf("order id = %q, want booking id", resp.OrderID)
	}
	if !strings.Contains(resp.PaymentURL, "Amount=10000.00") {
		t.Errorf("payment URL missing amount: %s", resp.PaymentURL)
	}

	if _, err := svc.StartCheckout(ctx, uuid.New(), bookingID, ""); err != ErrNotYourBooking {
		t.Errorf("stranger checkout: expected ErrNotYourBooking, got %v", err)
	}
	if _, err := svc.StartCheckout(ctx, userID, uuid.New(), ""); err != ErrBookingNotFound {
		t.Errorf("unknown booking: expected ErrBookingNotFound, got %v", err)
	}
}

func TestStartCheckoutRejectsUnpayable(t *testing.T) {
	svc, store, userID, bookingID := newTestService()
	ctx := context.Background()

	store.bookings[bookingID].PaymentStatus = booking.PaymentPaid
	if _, err := svc.StartCheckout(ctx, userID, bookingID, ""); err != ErrAlreadyPaid {
		t.Errorf("expected ErrAlreadyPaid, got %v", err)
	}

	store.bookings[bookingID].PaymentStatus = booking.PaymentUnpaid
	store.bookings[bookingID].Status = booking.StatusCancelled
	if _, err := svc.StartCheckout(ctx, userID, bookingID, ""); err != ErrNotPayable {
		t.Errorf("expected ErrNotPayable, got %v", err)
	}
}

func TestHandleCallback(t *testing.T) {
	svc, store, _, bookingID := newTestService()
	ctx := context.Background()

	orderID, err := svc.HandleCallback(ctx, signedForm("10000.00", bookingID.String()))
	if err != nil {
		t.Fatalf("callback: %v", err)
	}
	if orderID != bookingID.String() {
		t.Errorf("order id = %q", orderID)
	}

	b := store.bookings[bookingID]
	if b.PaymentStatus != booking.PaymentPaid || b.Status != booking.StatusConfirmed {
		t.Errorf("booking state = %v/%v, want paid/confirmed", b.PaymentStatus, b.Status)
	}

	// the gateway retries callbacks, repeat delivery must succeed
	if _, err := svc.HandleCallback(ctx, signedForm("10000.00", bookingID.String())); err != nil {
		t.Errorf("repeat callback: %v", err)
	}
}

func TestHandleCallbackRejectsBadSignature(t *testing.T) {
	svc, store, _, bookingID := newTestService()
	ctx := context.Background()

	form := signedForm("10000.00", bookingID.String())
	form.Set("Signature", checkout.Sign("tampered"))

	if _, err := svc.HandleCallback(ctx, form); err != ErrBadSignature {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
	if store.bookings[bookingID].PaymentStatus != booking.PaymentUnpaid {
		t.Error("booking must stay unpaid after rejected callback")
	}

	// amount tampering breaks the signature too
	tampered := signedForm("1.00", bookingID.String())
	tampered.Set("Signature", checkout.Sign(checkout.BuildResultSignatureBase("10000.00", bookingID.String(), testSecret2)))
	if _, err := svc.HandleCallback(ctx, tampered); err != ErrBadSignature {
		t.Errorf("expected ErrBadSignature for tampered amount, got %v", err)
	}
}

func TestHandleCallbackMalformed(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.HandleCallback(ctx, url.Values{}); err != ErrMalformedPayload {
		t.Errorf("expected ErrMalformedPayload, got %v", err)
	}

	form := signedForm("10.00", "not-a-uuid")
	if _, err := svc.HandleCallback(ctx, form); err != ErrMalformedPayload {
		t.Errorf("expected ErrMalformedPayload for bad order id, got %v", err)
	}

	unknown := uuid.New()
	if _, err := svc.HandleCallback(ctx, signedForm("10.00", unknown.String())); err != ErrBookingNotFound {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCallbackAmountMismatch(t *testing.T) {
	svc, store, _, bookingID := newTestService()
	ctx := context.Background()

	// correctly signed, but for a fraction of the booking's price
	_, err := svc.HandleCallback(ctx, signedForm("1.00", bookingID.String()))
	if err != ErrAmountMismatch {
		t.Fatalf("got %v, want ErrAmountMismatch", err)
	}

	b := store.bookings[bookingID]
	if b.PaymentStatus != booking.PaymentUnpaid || b.Status != booking.StatusPending {
		t.Errorf("booking changed on mismatched amount: %s/%s", b.PaymentStatus, b.Status)
	}

	// the same booking still accepts the real amount afterwards
	if _, err := svc.HandleCallback(ctx, signedForm("10000.00", bookingID.String())); err != nil {
		t.Fatalf("correct amount rejected: %v", err)
	}
	if b.PaymentStatus != booking.PaymentPaid {
		t.Error("expected booking paid after correct callback")
	}
}

func TestCallbackAmountScale(t *testing.T) {
	svc, store, _, bookingID := newTestService()
	ctx := context.Background()

	// gateways re-format amounts; "10000.0" is still the right charge
	if _, err := svc.HandleCallback(ctx, signedForm("10000.0", bookingID.String())); err != nil {
		t.Fatalf("numerically equal amount rejected: %v", err)
	}
	if store.bookings[bookingID].PaymentStatus != booking.PaymentPaid {
		t.Error("expected booking paid")
	}
}
