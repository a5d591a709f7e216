package space

import "errors"

var (
	ErrNotFound     = errors.New("space not found")
	ErrNotOwner     = errors.New("not the owner of this space")
	ErrNotApproved  = errors.New("space is not approved")
	ErrInvalidInput = errors.New("invalid space data")
)
