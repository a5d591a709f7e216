package checkout

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// The hosted checkout signs requests and callbacks with a SHA256 digest over a
// colon-joined base string. Secret1 signs outgoing payment links, Secret2 signs
// the server-to-server result callback.

// BuildStartSignatureBase builds the base for a payment link:
// MerchantID:Amount:OrderID:Secret1
func BuildStartSignatureBase(merchantID, amount, orderID, secret1 string) string {
	return strings.Join([]string{merchantID, amount, orderID, secret1}, ":")
}

// BuildResultSignatureBase builds the base for the result callback:
// Amount:OrderID:Secret2
func BuildResultSignatureBase(amount, orderID, secret2 string) string {
	return strings.Join([]string{amount, orderID, secret2}, ":")
}

// Sign returns the lowercase hex SHA256 digest of base
func Sign(base string) string {
	sum := sha256.Sum256([]byte(base))
	return hex.EncodeToString(sum[:])
}

// VerifySignature compares two hex digests in constant time, case-insensitively
func VerifySignature(expectedHex, receivedHex string) bool {
	expected := strings.ToLower(strings.TrimSpace(expectedHex))
	received := strings.ToLower(strings.TrimSpace(receivedHex))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}
