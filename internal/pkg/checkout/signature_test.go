package checkout

import (
	"context"
	"net/url"
	"strings"
	"testing"
)

func TestSignKnownDigest(t *testing.T) {
	// sha256("merchant:100.00:order-1:secret")
	got := Sign(BuildStartSignatureBase("merchant", "100.00", "order-1", "secret"))
	if len(got) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(got))
	}
	if got != Sign("merchant:100.00:order-1:secret") {
		t.Fatal("base builder does not match manual join")
	}
}

func TestVerifySignatureCaseInsensitive(t *testing.T) {
	sig := Sign("a:b:c")
	if !VerifySignature(sig, strings.ToUpper(sig)) {
		t.Fatal("expected case-insensitive match")
	}
	if VerifySignature(sig, "deadbeef") {
		t.Fatal("expected mismatch to fail")
	}
}

func TestCreatePaymentBuildsSignedURL(t *testing.T) {
	c := NewClient(Config{MerchantID: "roomly", Secret1: "s1", TestMode: true})

	resp, err := c.CreatePayment(context.Background(), CreatePaymentRequest{
		Amount:      4500,
		OrderID:     "bk-123",
		Description: "Meeting room, 3 slots",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	u, err := url.Parse(resp.PaymentURL)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	q := u.Query()
	if q.Get("Amount") != "4500.00" {
		t.Errorf("expected amount 4500.00, got %s", q.Get("Amount"))
	}
	if q.Get("IsTest") != "1" {
		t.Error("expected IsTest=1 in test mode")
	}
	wantSig := Sign(BuildStartSignatureBase("roomly", "4500.00", "bk-123", "s1"))
	if q.Get("Signature") != wantSig {
		t.Error("signature mismatch")
	}
}

func TestCreatePaymentRejectsInvalid(t *testing.T) {
	c := NewClient(Config{MerchantID: "roomly", Secret1: "s1"})
	if _, err := c.CreatePayment(context.Background(), CreatePaymentRequest{Amount: 0, OrderID: "x"}); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if _, err := c.CreatePayment(context.Background(), CreatePaymentRequest{Amount: 10, OrderID: ""}); err == nil {
		t.Fatal("expected error for empty order id")
	}
}

func TestVerifyResultSignature(t *testing.T) {
	sig := Sign(BuildResultSignatureBase("4500.00", "bk-123", "s2"))
	if !VerifyResultSignature("4500.00", "bk-123", sig, "s2") {
		t.Fatal("expected valid signature to verify")
	}
	if VerifyResultSignature("4500.00", "bk-123", sig, "wrong") {
		t.Fatal("expected wrong secret to fail")
	}
	if VerifyResultSignature("4500.00", "bk-123", "", "s2") {
		t.Fatal("expected empty signature to fail")
	}
}

func TestParseWebhookForm(t *testing.T) {
	form := url.Values{}
	form.Set("Amount", "100.00")
	form.Set("OrderID", "bk-1")
	form.Set("Signature", "abc")

	p, err := ParseWebhookForm(form)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.OrderID != "bk-1" {
		t.Errorf("expected order id bk-1, got %s", p.OrderID)
	}

	form.Del("OrderID")
	if _, err := ParseWebhookForm(form); err == nil {
		t.Fatal("expected error for missing OrderID")
	}
}

func TestAmountMatches(t *testing.T) {
	cases := []struct {
		raw      string
		expected float64
		want     bool
	}{
		{"10000.00", 10000, true},
		{"10000", 10000, true},
		{"100.10", 100.1, true},
		{"100.100000", 100.1, true},
		{"99.99", 100, false},
		{"", 100, false},
		{"not-a-number", 100, false},
	}
	for _, c := range cases {
		if got := AmountMatches(c.raw, c.expected); got != c.want {
			t.Errorf("AmountMatches(%q, %v) = %v, want %v", c.raw, c.expected, got, c.want)
		}
	}
}
