package auth

import (
	"context"
	"errors"

	"nyumbastay/internal/domain"
	"nyumbastay/internal/pkg/ident"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users  UserRepository
	staff  StaffRepository
	tokens TokenIssuer
}

func NewService(users UserRepository, staff StaffRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, staff: staff, tokens: tokens}
}

// Register creates a guest or partner account. Staff accounts are provisioned
// separately through the slot workflow, so any other role is rejected.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	role := domain.UserRole(req.Role)
	if req.Role == "" {
		role = domain.RoleGuest
	}
	if role != domain.RoleGuest && role != domain.RolePartner {
		return nil, ErrInvalidRole
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		UserRef:      ident.New(ident.KindUser),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, Role: string(u.Role), ID: u.ID, Name: u.Name}, nil
}

// Login authenticates against regular users first, then staff accounts.
// The two tables share an email namespace for login purposes only.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if u, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
		token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
		if err != nil {
			return nil, err
		}
		return &LoginResponse{Token: token, Role: string(u.Role), ID: u.ID, Name: u.Name}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	a, err := s.staff.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if a.Status != domain.StaffActive {
		return nil, ErrInactiveAccount
	}

	token, err := s.tokens.GenerateToken(a.ID, string(a.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, Role: string(a.Role), ID: a.ID, Name: a.Name}, nil
}
