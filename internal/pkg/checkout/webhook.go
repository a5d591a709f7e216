package checkout

import (
	"fmt"
	"math/big"
	"net/url"
)

// WebhookPayload represents the result callback data.
// The gateway posts form parameters, not JSON.
type WebhookPayload struct {
	Amount    string
	OrderID   string
	Signature string
}

// ParseWebhookForm parses form-encoded callback data into a structured payload
func ParseWebhookForm(form url.Values) (*WebhookPayload, error) {
	amount := form.Get("Amount")
	orderID := form.Get("OrderID")
	signature := form.Get("Signature")

	if amount == "" {
		return nil, fmt.Errorf("Amount is required")
	}
	if orderID == "" {
		return nil, fmt.Errorf("OrderID is required")
	}
	if signature == "" {
		return nil, fmt.Errorf("Signature is required")
	}

	return &WebhookPayload{
		Amount:    amount,
		OrderID:   orderID,
		Signature: signature,
	}, nil
}

// AmountMatches reports whether a callback amount equals the expected
// charge. The comparison is numeric, so "100.1" and "100.10" match.
// The expected side goes through the same two-decimal formatting used
// when the payment link was built.
func AmountMatches(raw string, expected float64) bool {
	got, ok := new(big.Rat).SetString(raw)
	if !ok {
		return false
	}
	want, ok := new(big.Rat).SetString(fmt.Sprintf("%.2f", expected))
	if !ok {
		return false
	}
	return got.Cmp(want) == 0
}

// VerifyResultSignature validates the result callback signature:
// SHA256(Amount:OrderID:Secret2)
func VerifyResultSignature(amount, orderID, signature, secret2 string) bool {
	if secret2 == "" || signature == "" {
		return false
	}
	expected := Sign(BuildResultSignatureBase(amount, orderID, secret2))
	return VerifySignature(expected, signature)
}
