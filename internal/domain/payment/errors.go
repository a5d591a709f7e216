package payment

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotYourBooking   = errors.New("not your booking")
	ErrAlreadyPaid      = errors.New("booking already paid")
	ErrNotPayable       = errors.New("booking is not payable")
	ErrBadSignature     = errors.New("invalid callback signature")
	ErrAmountMismatch   = errors.New("callback amount does not match booking")
	ErrMalformedPayload = errors.New("malformed callback payload")
)
