package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const paymentBaseURL = "https://pay.checkout.example/hosted"

// Config holds hosted checkout configuration
type Config struct {
	MerchantID string
	Secret1    string // signs payment links
	Secret2    string // signs result callbacks
	TestMode   bool
	SuccessURL string
	FailURL    string
}

// Client builds signed redirect URLs for the hosted payment page.
// There is no API call: the user is redirected and the gateway calls back.
type Client struct {
	config Config
}

// CreatePaymentRequest represents a payment link request
type CreatePaymentRequest struct {
	Amount      float64
	OrderID     string // booking id
	Description string
	Email       string
}

// CreatePaymentResponse carries the URL to redirect the user to
type CreatePaymentResponse struct {
	PaymentURL string
	OrderID    string
}

// NewClient creates a hosted checkout client
func NewClient(cfg Config) *Client {
	return &Client{config: cfg}
}

// CreatePayment generates a signed payment URL for user redirect
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("validation error: amount must be > 0")
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, fmt.Errorf("validation error: order id is empty")
	}
	if strings.TrimSpace(c.config.MerchantID) == "" {
		return nil, fmt.Errorf("checkout config error: merchant_id is empty")
	}
	if strings.TrimSpace(c.config.Secret1) == "" {
		return nil, fmt.Errorf("checkout config error: secret1 is empty")
	}

	amount := fmt.Sprintf("%.2f", req.Amount)
	signature := Sign(BuildStartSignatureBase(c.config.MerchantID, amount, req.OrderID, c.config.Secret1))

	params := url.Values{}
	params.Set("MerchantID", c.config.MerchantID)
	params.Set("Amount", amount)
	params.Set("OrderID", req.OrderID)
	params.Set("Description", req.Description)
	params.Set("Signature", signature)

	if c.config.TestMode {
		params.Set("IsTest", "1")
	}
	if req.Email != "" {
		params.Set("Email", req.Email)
	}
	if c.config.SuccessURL != "" {
		params.Set("SuccessURL", c.config.SuccessURL)
	}
	if c.config.FailURL != "" {
		params.Set("FailURL", c.config.FailURL)
	}

	return &CreatePaymentResponse{
		PaymentURL: paymentBaseURL + "?" + params.Encode(),
		OrderID:    req.OrderID,
	}, nil
}
