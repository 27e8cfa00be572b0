package staff

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not_found")

	// ErrQuotaExceeded: the free slots for this role are taken and the
	// request carried no payment. ErrPaymentRequired: a payment was
	// referenced but has not been confirmed. Both block creation, but the
	// surface tells them apart.
	ErrQuotaExceeded      = errors.New("role_limit_reached")
	ErrPaymentRequired    = errors.New("payment_required")
	ErrPaymentNotRequired = errors.New("payment_not_required")
	ErrEmailTaken         = errors.New("email_taken")
)
