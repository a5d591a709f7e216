package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("admin account is inactive")
	ErrNotFound           = errors.New("admin not found")
	ErrSpaceNotFound      = errors.New("space not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrReasonRequired     = errors.New("rejection reason is required")
)
