package auth

import (
	"context"
	"testing"
	"time"

	"nyumbastay/internal/domain"
	jwtsvc "nyumbastay/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 7
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffAccount), args.Error(1)
}

func testTokens() *jwtsvc.Service {
	return jwtsvc.New("test-secret", time.Hour)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestLogin_GuestSuccess(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "wanjiku@gmail.com").Return(&domain.User{
		ID:           7,
		Name:         "Wanjiku Kamau",
		Email:        "wanjiku@gmail.com",
		PasswordHash: hashOf(t, "guest123"),
		Role:         domain.RoleGuest,
	}, nil)

	service := NewService(mockUsers, new(MockStaffRepository), testTokens())

	res, err := service.Login(context.Background(), LoginRequest{
		Email:    "wanjiku@gmail.com",
		Password: "guest123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "guest", res.Role)
	assert.Equal(t, int64(7), res.ID)

	claims, err := testTokens().ValidateToken(res.Token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "guest", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "wanjiku@gmail.com").Return(&domain.User{
		ID:           7,
		PasswordHash: hashOf(t, "guest123"),
		Role:         domain.RoleGuest,
	}, nil)

	service := NewService(mockUsers, new(MockStaffRepository), testTokens())

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "wanjiku@gmail.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_FallsBackToStaff(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "ops@nyumbastay.co.ke").Return(nil, gorm.ErrRecordNotFound)

	mockStaff := new(MockStaffRepository)
	mockStaff.On("GetByEmail", mock.Anything, "ops@nyumbastay.co.ke").Return(&domain.StaffAccount{
		ID:           3,
		Name:         "Platform Operator",
		Email:        "ops@nyumbastay.co.ke",
		PasswordHash: hashOf(t, "operator123"),
		Role:         domain.StaffRole("operator"),
		Status:       domain.StaffActive,
	}, nil)

	service := NewService(mockUsers, mockStaff, testTokens())

	res, err := service.Login(context.Background(), LoginRequest{
		Email:    "ops@nyumbastay.co.ke",
		Password: "operator123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "operator", res.Role)
	assert.Equal(t, int64(3), res.ID)
}

func TestLogin_InactiveStaffRejected(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	mockStaff := new(MockStaffRepository)
	mockStaff.On("GetByEmail", mock.Anything, mock.Anything).Return(&domain.StaffAccount{
		ID:           4,
		PasswordHash: hashOf(t, "operator123"),
		Role:         domain.RoleManager,
		Status:       domain.StaffInactive,
	}, nil)

	service := NewService(mockUsers, mockStaff, testTokens())

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "gone@nyumbastay.co.ke",
		Password: "operator123",
	})
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	mockStaff := new(MockStaffRepository)
	mockStaff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockUsers, mockStaff, testTokens())

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_GuestByDefault(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "new@gmail.com").Return(nil, gorm.ErrRecordNotFound)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, new(MockStaffRepository), testTokens())

	res, err := service.Register(context.Background(), RegisterRequest{
		Email:    "new@gmail.com",
		Password: "longenough",
		Name:     "New Guest",
	})

	assert.NoError(t, err)
	assert.Equal(t, "guest", res.Role)
	assert.NotEmpty(t, res.Token)
}

func TestRegister_EmailTaken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "taken@gmail.com").Return(&domain.User{ID: 1}, nil)

	service := NewService(mockUsers, new(MockStaffRepository), testTokens())

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "taken@gmail.com",
		Password: "longenough",
		Name:     "Dup",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_StaffRolesRejected(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockStaffRepository), testTokens())

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "sneaky@gmail.com",
		Password: "longenough",
		Name:     "Sneaky",
		Role:     "operator",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}
