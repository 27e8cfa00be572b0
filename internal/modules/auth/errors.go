package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInactiveAccount    = errors.New("account_inactive")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidRole        = errors.New("invalid_role")
)
