package payment

import (
	"context"
	"time"

	"nyumbastay/internal/domain"
)

type transactionRepo interface {
	Create(ctx context.Context, t *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	GetByCheckoutID(ctx context.Context, checkoutID string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus, failureReason string, settledAt *time.Time) error

	// Settle and ReverseSettlement span the transaction and reservation
	// tables in a single database transaction.
	Settle(ctx context.Context, id, reservationID int64, settledAt time.Time) error
	ReverseSettlement(ctx context.Context, id, reservationID int64, reason string) error
}

type reservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

type settlementNotifier interface {
	NotifyPaymentSettled(ctx context.Context, userID int64, bookingRef string, amount int64) error
}
