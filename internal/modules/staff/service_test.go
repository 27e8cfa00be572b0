package staff

import (
	"context"
	"testing"

	"nyumbastay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) CountByRole(ctx context.Context, scope domain.DashboardScope, role domain.StaffRole) (int64, error) {
	args := m.Called(ctx, scope, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStaffRepository) Create(ctx context.Context, a *domain.StaffAccount) error {
	args := m.Called(ctx, a)
	if a != nil && args.Error(0) == nil {
		a.ID = 999
	}
	return args.Error(0)
}

func (m *MockStaffRepository) CreateWithSlotPayment(ctx context.Context, a *domain.StaffAccount, paymentID int64) error {
	args := m.Called(ctx, a, paymentID)
	if a != nil && args.Error(0) == nil {
		a.ID = 999
		a.SlotPaymentID = &paymentID
	}
	return args.Error(0)
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffAccount), args.Error(1)
}

func (m *MockStaffRepository) ListByScope(ctx context.Context, scope domain.DashboardScope) ([]domain.StaffAccount, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffAccount), args.Error(1)
}

func (m *MockStaffRepository) UpdateStatus(ctx context.Context, id int64, status domain.StaffStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStaffRepository) CreateSlotPayment(ctx context.Context, p *domain.SlotPayment) error {
	args := m.Called(ctx, p)
	if p != nil && args.Error(0) == nil {
		p.ID = 55
	}
	return args.Error(0)
}

func (m *MockStaffRepository) GetSlotPayment(ctx context.Context, id int64) (*domain.SlotPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlotPayment), args.Error(1)
}

func (m *MockStaffRepository) UpdateSlotPaymentStatus(ctx context.Context, id int64, status domain.SlotPaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

const testSlotFee = 5000

func provisionReq(role string, paymentID *int64) ProvisionStaffRequest {
	return ProvisionStaffRequest{
		Scope:         string(domain.ScopeClient),
		Role:          role,
		Name:          "Akinyi Owuor",
		Email:         "akinyi@savannahstays.co.ke",
		Password:      "s3cret-pass",
		SlotPaymentID: paymentID,
	}
}

func expectNoExistingEmail(m *MockStaffRepository) {
	m.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
}

func TestProvision_FreeSlotAvailable(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	expectNoExistingEmail(mockStaff)
	mockStaff.On("CountByRole", mock.Anything, domain.ScopeClient, domain.RoleAdmin).Return(int64(1), nil)
	mockStaff.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockStaff, testSlotFee)

	acc, err := service.Provision(context.Background(), provisionReq("admin", nil))

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, acc.Role)
	assert.Equal(t, domain.StaffActive, acc.Status)
	assert.Nil(t, acc.SlotPaymentID)
	assert.Regexp(t, `^US\d{10}$`, acc.UserRef)
}

func TestProvision_ThirdAdminWithoutPaymentBlocked(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	expectNoExistingEmail(mockStaff)
	mockStaff.On("CountByRole", mock.Anything, domain.ScopeClient, domain.RoleAdmin).Return(int64(2), nil)

	service := NewService(mockStaff, testSlotFee)

	_, err := service.Provision(context.Background(), provisionReq("admin", nil))

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	mockStaff.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockStaff.AssertNotCalled(t, "CreateWithSlotPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvision_UnconfirmedPaymentBlocked(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	expectNoExistingEmail(mockStaff)
	mockStaff.On("CountByRole", mock.Anything, domain.ScopeClient, domain.RoleAdmin).Return(int64(2), nil)

	paymentID := int64(55)
	mockStaff.On("GetSlotPayment", mock.Anything, paymentID).Return(&domain.SlotPayment{
		ID:     paymentID,
		Scope:  domain.ScopeClient,
		Role:   domain.RoleAdmin,
		Amount: testSlotFee,
		Status: domain.SlotPaymentPendingStatus,
	}, nil)

	service := NewService(mockStaff, testSlotFee)

	_, err := service.Provision(context.Background(), provisionReq("admin", &paymentID))

	assert.ErrorIs(t, err, ErrPaymentRequired)
	mockStaff.AssertNotCalled(t, "CreateWithSlotPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvision_ConfirmedPaymentCreatesExactlyOneAccount(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	expectNoExistingEmail(mockStaff)
	mockStaff.On("CountByRole", mock.Anything, domain.ScopeClient, domain.RoleAdmin).Return(int64(2), nil)

	paymentID := int64(55)
	mockStaff.On("GetSlotPayment", mock.Anything, paymentID).Return(&domain.SlotPayment{
		ID:     paymentID,
		Scope:  domain.ScopeClient,
		Role:   domain.RoleAdmin,
		Amount: testSlotFee,
		Status: domain.SlotPaymentConfirmedStatus,
	}, nil)
	mockStaff.On("CreateWithSlotPayment", mock.Anything, mock.Anything, paymentID).Return(nil)

	service := NewService(mockStaff, testSlotFee)

	acc, err := service.Provision(context.Background(), provisionReq("admin", &paymentID))

	assert.NoError(t, err)
	assert.NotNil(t, acc.SlotPaymentID)
	assert.Equal(t, paymentID, *acc.SlotPaymentID)
	mockStaff.AssertNumberOfCalls(t, "CreateWithSlotPayment", 1)
	mockStaff.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProvision_PaymentRacedToConsumed(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	expectNoExistingEmail(mockStaff)
	mockStaff.On("CountByRole", mock.Anything, domain.ScopeClient, domain.RoleAdmin).Return(int64(2), nil)

	paymentID := int64(55)
	mockStaff.On("GetSlotPayment", mock.Anything, paymentID).Return(&domain.SlotPayment{
		ID:     paymentID,
		Scope:  domain.ScopeClient,
		Role:   domain.RoleAdmin,
		Status: domain.SlotPaymentConfirmedStatus,
	}, nil)
	// Another provision consumed the payment between read and write.
	mockStaff.On("CreateWithSlotPayment", mock.Anything, mock.Anything, paymentID).Return(gorm.ErrRecordNotFound)

	service := NewService(mockStaff, testSlotFee)

	_, err := service.Provision(context.Background(), provisionReq("admin", &paymentID))
	assert.ErrorIs(t, err, ErrPaymentRequired)
}

func TestProvision_PaymentScopeMismatch(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	expectNoExistingEmail(mockStaff)
	mockStaff.On("CountByRole", mock.Anything, domain.ScopeClient, domain.RoleAdmin).Return(int64(2), nil)

	paymentID := int64(55)
	mockStaff.On("GetSlotPayment", mock.Anything, paymentID).Return(&domain.SlotPayment{
		ID:     paymentID,
		Scope:  domain.ScopeSuperAdmin,
		Role:   domain.RoleManager,
		Status: domain.SlotPaymentConfirmedStatus,
	}, nil)

	service := NewService(mockStaff, testSlotFee)

	_, err := service.Provision(context.Background(), provisionReq("admin", &paymentID))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProvision_EditorsAreUncapped(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	expectNoExistingEmail(mockStaff)
	mockStaff.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockStaff, testSlotFee)

	acc, err := service.Provision(context.Background(), provisionReq("editor", nil))

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, acc.Role)
	mockStaff.AssertNotCalled(t, "CountByRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvision_EmailTaken(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	mockStaff.On("GetByEmail", mock.Anything, mock.Anything).Return(&domain.StaffAccount{ID: 1}, nil)

	service := NewService(mockStaff, testSlotFee)

	_, err := service.Provision(context.Background(), provisionReq("editor", nil))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestProvision_UnknownRoleOrScope(t *testing.T) {
	service := NewService(new(MockStaffRepository), testSlotFee)

	req := provisionReq("owner", nil)
	_, err := service.Provision(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	req = provisionReq("admin", nil)
	req.Scope = "regional"
	_, err = service.Provision(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInitiateSlotPayment_UnderQuotaNothingToPay(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	mockStaff.On("CountByRole", mock.Anything, domain.ScopeClient, domain.RoleManager).Return(int64(1), nil)

	service := NewService(mockStaff, testSlotFee)

	_, err := service.InitiateSlotPayment(context.Background(), SlotPaymentRequest{
		Scope: string(domain.ScopeClient),
		Role:  "manager",
	})
	assert.ErrorIs(t, err, ErrPaymentNotRequired)
}

func TestInitiateSlotPayment_AtCapMintsPending(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	mockStaff.On("CountByRole", mock.Anything, domain.ScopeClient, domain.RoleManager).Return(int64(2), nil)
	mockStaff.On("CreateSlotPayment", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockStaff, testSlotFee)

	p, err := service.InitiateSlotPayment(context.Background(), SlotPaymentRequest{
		Scope: string(domain.ScopeClient),
		Role:  "manager",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.SlotPaymentPendingStatus, p.Status)
	assert.Equal(t, int64(testSlotFee), p.Amount)
}

func TestInitiateSlotPayment_EditorNeverPays(t *testing.T) {
	service := NewService(new(MockStaffRepository), testSlotFee)

	_, err := service.InitiateSlotPayment(context.Background(), SlotPaymentRequest{
		Scope: string(domain.ScopeClient),
		Role:  "editor",
	})
	assert.ErrorIs(t, err, ErrPaymentNotRequired)
}

func TestConfirmSlotPayment_PendingOnly(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	mockStaff.On("GetSlotPayment", mock.Anything, int64(55)).Return(&domain.SlotPayment{
		ID:     55,
		Status: domain.SlotPaymentConsumedStatus,
	}, nil)

	service := NewService(mockStaff, testSlotFee)

	_, err := service.ConfirmSlotPayment(context.Background(), 55)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConfirmSlotPayment_Success(t *testing.T) {
	mockStaff := new(MockStaffRepository)
	mockStaff.On("GetSlotPayment", mock.Anything, int64(55)).Return(&domain.SlotPayment{
		ID:     55,
		Status: domain.SlotPaymentPendingStatus,
	}, nil)
	mockStaff.On("UpdateSlotPaymentStatus", mock.Anything, int64(55), domain.SlotPaymentConfirmedStatus).Return(nil)

	service := NewService(mockStaff, testSlotFee)

	p, err := service.ConfirmSlotPayment(context.Background(), 55)

	assert.NoError(t, err)
	assert.Equal(t, domain.SlotPaymentConfirmedStatus, p.Status)
}
