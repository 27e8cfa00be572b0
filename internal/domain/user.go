package domain

import "time"

type UserRole string

const (
	RoleGuest    UserRole = "guest"
	RolePartner  UserRole = "partner"
	RoleOperator UserRole = "operator"
)

type User struct {
	ID           int64     `json:"id"`
	UserRef      string    `json:"user_ref"`
	Name         string    `json:"name" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
