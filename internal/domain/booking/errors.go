package booking

import "errors"

var (
	ErrNotFound       = errors.New("booking not found")
	ErrSpaceNotFound  = errors.New("space not found")
	ErrNotApproved    = errors.New("space is not open for booking")
	ErrNoSlots        = errors.New("no slots selected")
	ErrSlotUnknown    = errors.New("slot outside the space's window")
	ErrSlotTaken      = errors.New("slot already booked")
	ErrAccessDenied   = errors.New("no access to this booking")
	ErrAlreadyDone    = errors.New("booking already cancelled")
	ErrNotCancellable = errors.New("booking cannot be cancelled")
)
