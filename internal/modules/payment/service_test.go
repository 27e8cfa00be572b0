package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"nyumbastay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	args := m.Called(ctx, t)
	if t != nil && args.Error(0) == nil {
		t.ID = 301
	}
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetByCheckoutID(ctx context.Context, checkoutID string) (*domain.Transaction, error) {
	args := m.Called(ctx, checkoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus, failureReason string, settledAt *time.Time) error {
	args := m.Called(ctx, id, status, failureReason, settledAt)
	return args.Error(0)
}

func (m *MockTransactionRepo) Settle(ctx context.Context, id, reservationID int64, settledAt time.Time) error {
	args := m.Called(ctx, id, reservationID, settledAt)
	return args.Error(0)
}

func (m *MockTransactionRepo) ReverseSettlement(ctx context.Context, id, reservationID int64, reason string) error {
	args := m.Called(ctx, id, reservationID, reason)
	return args.Error(0)
}

type MockReservationReader struct {
	mock.Mock
}

func (m *MockReservationReader) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type MockSettlementNotifier struct {
	mock.Mock
}

func (m *MockSettlementNotifier) NotifyPaymentSettled(ctx context.Context, userID int64, bookingRef string, amount int64) error {
	args := m.Called(ctx, userID, bookingRef, amount)
	return args.Error(0)
}

func unpaidReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:            12,
		BookingRef:    "BK0000000012",
		UserID:        7,
		TotalAmount:   15000,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
}

func newTestService(tx *MockTransactionRepo, res *MockReservationReader, n *MockSettlementNotifier) *Service {
	// settleDelay 0: callbacks are driven explicitly by the test.
	return NewService(tx, res, n, nil, 0)
}

func TestInitiateSTKPush_Success(t *testing.T) {
	mockTx := new(MockTransactionRepo)
	mockRes := new(MockReservationReader)

	mockRes.On("GetByID", mock.Anything, int64(12)).Return(unpaidReservation(), nil)
	mockTx.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockTx, mockRes, nil)

	tr, err := service.InitiateSTKPush(context.Background(), 12, "+254712345678")

	assert.NoError(t, err)
	assert.Equal(t, domain.TransactionPending, tr.Status)
	assert.Equal(t, int64(15000), tr.Amount)
	assert.Equal(t, "BK0000000012", tr.BookingRef)
	assert.Regexp(t, `^TX\d{10}$`, tr.TransactionRef)
	assert.Len(t, tr.MpesaCode, 10)
	assert.NotEmpty(t, tr.CheckoutID)
}

func TestInitiateSTKPush_PhoneRequired(t *testing.T) {
	service := newTestService(new(MockTransactionRepo), new(MockReservationReader), nil)

	_, err := service.InitiateSTKPush(context.Background(), 12, "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInitiateSTKPush_AlreadyPaid(t *testing.T) {
	mockRes := new(MockReservationReader)
	paid := unpaidReservation()
	paid.PaymentStatus = domain.PaymentPaid
	mockRes.On("GetByID", mock.Anything, int64(12)).Return(paid, nil)

	service := newTestService(new(MockTransactionRepo), mockRes, nil)

	_, err := service.InitiateSTKPush(context.Background(), 12, "+254712345678")
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestHandleCallback_SuccessCascadesToReservation(t *testing.T) {
	mockTx := new(MockTransactionRepo)
	mockRes := new(MockReservationReader)
	mockNotifs := new(MockSettlementNotifier)

	pending := &domain.Transaction{
		ID:            301,
		ReservationID: 12,
		BookingRef:    "BK0000000012",
		CheckoutID:    "co-1",
		Amount:        15000,
		Status:        domain.TransactionPending,
	}
	mockTx.On("GetByCheckoutID", mock.Anything, "co-1").Return(pending, nil)
	mockTx.On("Settle", mock.Anything, int64(301), int64(12), mock.Anything).Return(nil)

	paid := unpaidReservation()
	paid.PaymentStatus = domain.PaymentPaid
	mockRes.On("GetByID", mock.Anything, int64(12)).Return(paid, nil)
	mockNotifs.On("NotifyPaymentSettled", mock.Anything, int64(7), "BK0000000012", int64(15000)).Return(nil)

	service := newTestService(mockTx, mockRes, mockNotifs)

	tr, err := service.HandleCallback(context.Background(), "co-1", true, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.TransactionCompleted, tr.Status)
	assert.NotNil(t, tr.SettledAt)
	mockTx.AssertExpectations(t)
	mockNotifs.AssertExpectations(t)
}

func TestHandleCallback_SettleFailurePropagates(t *testing.T) {
	mockTx := new(MockTransactionRepo)
	mockNotifs := new(MockSettlementNotifier)

	pending := &domain.Transaction{
		ID:            301,
		ReservationID: 12,
		CheckoutID:    "co-1",
		Status:        domain.TransactionPending,
	}
	mockTx.On("GetByCheckoutID", mock.Anything, "co-1").Return(pending, nil)
	mockTx.On("Settle", mock.Anything, int64(301), int64(12), mock.Anything).Return(errors.New("database is locked"))

	service := newTestService(mockTx, new(MockReservationReader), mockNotifs)

	_, err := service.HandleCallback(context.Background(), "co-1", true, "")

	assert.ErrorContains(t, err, "database is locked")
	mockNotifs.AssertNotCalled(t, "NotifyPaymentSettled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallback_FailureKeepsReservationUnpaid(t *testing.T) {
	mockTx := new(MockTransactionRepo)

	pending := &domain.Transaction{
		ID:            301,
		ReservationID: 12,
		CheckoutID:    "co-1",
		Status:        domain.TransactionPending,
	}
	mockTx.On("GetByCheckoutID", mock.Anything, "co-1").Return(pending, nil)
	mockTx.On("UpdateStatus", mock.Anything, int64(301), domain.TransactionFailed, "insufficient funds", mock.Anything).Return(nil)

	service := newTestService(mockTx, new(MockReservationReader), nil)

	tr, err := service.HandleCallback(context.Background(), "co-1", false, "insufficient funds")

	assert.NoError(t, err)
	assert.Equal(t, domain.TransactionFailed, tr.Status)
	assert.Equal(t, "insufficient funds", tr.FailureReason)
	mockTx.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallback_RepeatedSuccessIsIdempotent(t *testing.T) {
	mockTx := new(MockTransactionRepo)

	settled := time.Now().UTC()
	completed := &domain.Transaction{
		ID:         301,
		CheckoutID: "co-1",
		Status:     domain.TransactionCompleted,
		SettledAt:  &settled,
	}
	mockTx.On("GetByCheckoutID", mock.Anything, "co-1").Return(completed, nil)

	service := newTestService(mockTx, new(MockReservationReader), nil)

	tr, err := service.HandleCallback(context.Background(), "co-1", true, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.TransactionCompleted, tr.Status)
	mockTx.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallback_UnknownCheckout(t *testing.T) {
	mockTx := new(MockTransactionRepo)
	mockTx.On("GetByCheckoutID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockTx, new(MockReservationReader), nil)

	_, err := service.HandleCallback(context.Background(), "nope", true, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReverse_CompletedGoesBackToUnpaid(t *testing.T) {
	mockTx := new(MockTransactionRepo)

	settled := time.Now().UTC()
	completed := &domain.Transaction{
		ID:            301,
		ReservationID: 12,
		BookingRef:    "BK0000000012",
		Status:        domain.TransactionCompleted,
		SettledAt:     &settled,
	}
	mockTx.On("GetByID", mock.Anything, int64(301)).Return(completed, nil)
	mockTx.On("ReverseSettlement", mock.Anything, int64(301), int64(12), "chargeback").Return(nil)

	service := newTestService(mockTx, new(MockReservationReader), nil)

	tr, err := service.Reverse(context.Background(), 301, "chargeback")

	assert.NoError(t, err)
	assert.Equal(t, domain.TransactionFailed, tr.Status)
	assert.Nil(t, tr.SettledAt)
	assert.Equal(t, "chargeback", tr.FailureReason)
	mockTx.AssertExpectations(t)
}

func TestReverse_RelockFailurePropagates(t *testing.T) {
	mockTx := new(MockTransactionRepo)

	settled := time.Now().UTC()
	completed := &domain.Transaction{
		ID:            301,
		ReservationID: 12,
		Status:        domain.TransactionCompleted,
		SettledAt:     &settled,
	}
	mockTx.On("GetByID", mock.Anything, int64(301)).Return(completed, nil)
	mockTx.On("ReverseSettlement", mock.Anything, int64(301), int64(12), "chargeback").Return(errors.New("database is locked"))

	service := newTestService(mockTx, new(MockReservationReader), nil)

	_, err := service.Reverse(context.Background(), 301, "chargeback")
	assert.ErrorContains(t, err, "database is locked")
}

func TestReverse_OnlyCompletedIsReversible(t *testing.T) {
	mockTx := new(MockTransactionRepo)
	mockTx.On("GetByID", mock.Anything, int64(301)).Return(&domain.Transaction{
		ID:     301,
		Status: domain.TransactionPending,
	}, nil)

	service := newTestService(mockTx, new(MockReservationReader), nil)

	_, err := service.Reverse(context.Background(), 301, "typo")
	assert.ErrorIs(t, err, ErrNotReversible)
}
