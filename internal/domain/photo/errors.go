package photo

import "errors"

var (
	ErrNotFound      = errors.New("photo not found")
	ErrSpaceNotFound = errors.New("space not found")
	ErrNotOwner      = errors.New("not the owner of this space")
	ErrInvalidFile   = errors.New("invalid image file")
	ErrTooLarge      = errors.New("image file too large")
	ErrTooMany       = errors.New("photo limit reached")
)
