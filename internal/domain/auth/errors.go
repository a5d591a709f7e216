package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrUserBlocked        = errors.New("account is blocked")
	ErrEmailTaken         = errors.New("email already registered")
)
