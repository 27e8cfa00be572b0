package auth

import (
	"context"

	"nyumbastay/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
