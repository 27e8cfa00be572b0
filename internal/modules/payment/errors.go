package payment

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not_found")
	ErrAlreadyPaid = errors.New("already_paid")
	ErrNotReversible = errors.New("not_reversible")
)
