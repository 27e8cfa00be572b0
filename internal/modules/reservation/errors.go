package reservation

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidTransition  = errors.New("invalid_status_transition")
	ErrAlreadyInState     = errors.New("already_in_this_status")
	ErrPaymentRequired    = errors.New("payment_required")
	ErrCancelNotConfirmed = errors.New("cancellation_not_confirmed")
	ErrDuplicate          = errors.New("duplicate_submission")
	ErrVersionConflict    = errors.New("version_conflict")
)
