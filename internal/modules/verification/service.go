package verification

import (
	"context"
	"errors"
	"strings"
	"time"

	"nyumbastay/internal/domain"

	"gorm.io/gorm"
)

const searchLimit = 25

type reservationSearcher interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	FindByRefLike(ctx context.Context, q string, limit int) ([]domain.Reservation, error)
}

type userSearcher interface {
	FindByRefLike(ctx context.Context, q string, limit int) ([]domain.User, error)
}

type transactionSearcher interface {
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	FindByCodeLike(ctx context.Context, q string, limit int) ([]domain.Transaction, error)
}

// Service is the operator-side verification console: lookup across bookings,
// users and settlements, plus manual status corrections. Multi-table
// corrections run inside a single database transaction.
type Service struct {
	db           *gorm.DB
	reservations reservationSearcher
	users        userSearcher
	transactions transactionSearcher
	loggerf      func(format string, args ...interface{})
}

func NewService(db *gorm.DB, reservations reservationSearcher, users userSearcher, transactions transactionSearcher, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		db:           db,
		reservations: reservations,
		users:        users,
		transactions: transactions,
		loggerf:      loggerf,
	}
}

// Search resolves a lookup by booking ref, user ref or M-Pesa code. Matching
// is partial and case-insensitive; when several criteria are given the first
// one with results wins (OR semantics, as the console has always behaved).
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if q.Empty() {
		return nil, ErrValidation
	}

	if v := strings.TrimSpace(q.BookingRef); v != "" {
		rows, err := s.reservations.FindByRefLike(ctx, strings.ToLower(v), searchLimit)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return &SearchResult{MatchedBy: "booking_ref", Reservations: rows}, nil
		}
	}

	if v := strings.TrimSpace(q.UserRef); v != "" {
		rows, err := s.users.FindByRefLike(ctx, strings.ToLower(v), searchLimit)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return &SearchResult{MatchedBy: "user_ref", Users: rows}, nil
		}
	}

	if v := strings.TrimSpace(q.MpesaCode); v != "" {
		rows, err := s.transactions.FindByCodeLike(ctx, strings.ToLower(v), searchLimit)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return &SearchResult{MatchedBy: "mpesa_code", Transactions: rows}, nil
		}
	}

	return &SearchResult{MatchedBy: ""}, nil
}

// ForceComplete moves a failed transaction to completed and, in the same
// database transaction, the linked reservation to confirmed/paid with the
// failure reason cleared. No intermediate state is ever observable.
func (s *Service) ForceComplete(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.Status != domain.TransactionFailed {
		return nil, ErrNotFailed
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table("transactions").
			Where("id = ? AND status = ?", t.ID, string(domain.TransactionFailed)).
			Updates(map[string]any{
				"status":         string(domain.TransactionCompleted),
				"failure_reason": nil,
				"settled_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFailed
		}

		return tx.Table("reservations").
			Where("id = ?", t.ReservationID).
			Updates(map[string]any{
				"status":         string(domain.BookingConfirmed),
				"payment_status": string(domain.PaymentPaid),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	s.loggerf("level=info msg=transaction force-completed transaction_id=%d booking_ref=%s", t.ID, t.BookingRef)

	t.Status = domain.TransactionCompleted
	t.FailureReason = ""
	t.SettledAt = &now
	return t, nil
}

// OverrideStatus sets the booking status directly, regardless of payment
// state. A partner may check a guest in before settlement lands, so the
// ordered-progression guard is deliberately not applied; only terminal
// states and no-op changes are rejected.
func (s *Service) OverrideStatus(ctx context.Context, reservationID int64, status string) (*domain.Reservation, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, ErrValidation
	}
	target := domain.BookingStatus(status)

	b, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.Status == target {
		return nil, ErrAlreadyInState
	}
	if b.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	if err := s.db.WithContext(ctx).
		Table("reservations").
		Where("id = ?", reservationID).
		Update("status", string(target)).Error; err != nil {
		return nil, err
	}
	b.Status = target
	return b, nil
}
