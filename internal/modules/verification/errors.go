package verification

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not_found")
	ErrAlreadyInState    = errors.New("already_in_this_status")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrNotFailed         = errors.New("transaction_not_failed")
)
