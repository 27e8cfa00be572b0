package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"nyumbastay/internal/domain"
	"nyumbastay/internal/pkg/ident"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the mocked M-Pesa settlement collaborator: an STK push that
// resolves to a callback after a fixed delay. The rest of the system only
// consumes the transaction status it writes.
type Service struct {
	transactions transactionRepo
	reservations reservationReader
	notifs       settlementNotifier
	loggerf      func(format string, args ...interface{})

	// settleDelay > 0 auto-settles initiated pushes after the delay,
	// standing in for the gateway callback in local runs.
	settleDelay time.Duration
}

func NewService(
	transactions transactionRepo,
	reservations reservationReader,
	notifs settlementNotifier,
	loggerf func(format string, args ...interface{}),
	settleDelay time.Duration,
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		transactions: transactions,
		reservations: reservations,
		notifs:       notifs,
		loggerf:      loggerf,
		settleDelay:  settleDelay,
	}
}

// InitiateSTKPush creates a pending transaction for the reservation's full
// amount and, when a settle delay is configured, schedules the mock
// settlement.
func (s *Service) InitiateSTKPush(ctx context.Context, reservationID int64, phone string) (*domain.Transaction, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, ErrValidation
	}

	b, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.PaymentStatus == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	t := &domain.Transaction{
		TransactionRef: ident.New(ident.KindTransaction),
		ReservationID:  b.ID,
		BookingRef:     b.BookingRef,
		MpesaCode:      mpesaCode(),
		CheckoutID:     uuid.NewString(),
		PhoneNumber:    phone,
		Amount:         b.TotalAmount,
		Status:         domain.TransactionPending,
	}
	if err := s.transactions.Create(ctx, t); err != nil {
		return nil, err
	}

	s.loggerf("level=info msg=stk push initiated booking_ref=%s checkout_id=%s amount=%d", b.BookingRef, t.CheckoutID, t.Amount)

	if s.settleDelay > 0 {
		checkoutID := t.CheckoutID
		go func() {
			time.Sleep(s.settleDelay)
			if _, err := s.HandleCallback(context.Background(), checkoutID, true, ""); err != nil {
				s.loggerf("level=error msg=mock settlement failed checkout_id=%s err=%v", checkoutID, err)
			}
		}()
	}

	return t, nil
}

// HandleCallback records the settlement outcome. A success cascades the
// reservation's payment status to paid in the same database transaction that
// completes the payment record; the booking status stays where the partner
// left it. Repeated success callbacks are idempotent.
func (s *Service) HandleCallback(ctx context.Context, checkoutID string, success bool, failureReason string) (*domain.Transaction, error) {
	t, err := s.transactions.GetByCheckoutID(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if t.Status == domain.TransactionCompleted {
		s.loggerf("level=info msg=idempotent callback already completed checkout_id=%s", checkoutID)
		return t, nil
	}

	if !success {
		if err := s.transactions.UpdateStatus(ctx, t.ID, domain.TransactionFailed, failureReason, nil); err != nil {
			return nil, err
		}
		t.Status = domain.TransactionFailed
		t.FailureReason = failureReason
		return t, nil
	}

	now := time.Now().UTC()
	if err := s.transactions.Settle(ctx, t.ID, t.ReservationID, now); err != nil {
		return nil, err
	}
	t.Status = domain.TransactionCompleted
	t.FailureReason = ""
	t.SettledAt = &now

	if s.notifs != nil {
		b, berr := s.reservations.GetByID(ctx, t.ReservationID)
		if berr != nil {
			s.loggerf("level=error msg=settled but could not load reservation for notification booking_ref=%s err=%v", t.BookingRef, berr)
		} else {
			_ = s.notifs.NotifyPaymentSettled(ctx, b.UserID, b.BookingRef, t.Amount)
		}
	}
	return t, nil
}

// Reverse flips a completed transaction back to failed and the linked
// reservation back to unpaid, in one database transaction; the disclosure
// gate re-locks on the next read.
func (s *Service) Reverse(ctx context.Context, transactionID int64, reason string) (*domain.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.Status != domain.TransactionCompleted {
		return nil, ErrNotReversible
	}

	if err := s.transactions.ReverseSettlement(ctx, t.ID, t.ReservationID, reason); err != nil {
		return nil, err
	}
	t.Status = domain.TransactionFailed
	t.FailureReason = reason
	t.SettledAt = nil

	s.loggerf("level=info msg=settlement reversed transaction_id=%d booking_ref=%s reason=%s", t.ID, t.BookingRef, reason)
	return t, nil
}

// mpesaCode mimics the 10-character receipt codes the gateway issues.
func mpesaCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:10]
}
