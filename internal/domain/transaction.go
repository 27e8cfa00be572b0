package domain

import "time"

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is one M-Pesa settlement attempt, linked 1:1 to a reservation.
type Transaction struct {
	ID            int64  `json:"id"`
	TransactionRef string `json:"transaction_ref"`
	ReservationID int64  `json:"reservation_id"`
	BookingRef    string `json:"booking_ref"`

	MpesaCode   string `json:"mpesa_code"`
	CheckoutID  string `json:"checkout_id"`
	PhoneNumber string `json:"phone_number"`
	Amount      int64  `json:"amount"`

	Status        TransactionStatus `json:"status"`
	FailureReason string            `json:"failure_reason,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}
