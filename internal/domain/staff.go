package domain

import "time"

type StaffRole string

const (
	RoleAdmin   StaffRole = "admin"
	RoleManager StaffRole = "manager"
	RoleEditor  StaffRole = "editor"
)

type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// DashboardScope separates platform-operator staff from partner staff.
type DashboardScope string

const (
	ScopeSuperAdmin DashboardScope = "super_admin"
	ScopeClient     DashboardScope = "client"
)

type StaffAccount struct {
	ID           int64          `json:"id"`
	UserRef      string         `json:"user_ref"`
	Name         string         `json:"name" validate:"required"`
	Email        string         `json:"email" validate:"required,email"`
	PasswordHash string         `json:"-"`
	Role         StaffRole      `json:"role"`
	Status       StaffStatus    `json:"status"`
	Scope        DashboardScope `json:"scope"`
	// SlotPaymentID is set when this account occupied a paid slot.
	SlotPaymentID *int64    `json:"slot_payment_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SlotPaymentStatus string

const (
	SlotPaymentPendingStatus   SlotPaymentStatus = "pending"
	SlotPaymentConfirmedStatus SlotPaymentStatus = "confirmed"
	SlotPaymentConsumedStatus  SlotPaymentStatus = "consumed"
	SlotPaymentCancelledStatus SlotPaymentStatus = "cancelled"
)

// SlotPayment is the one-time fee charged for Admin/Manager slots beyond the
// free quota. An account is only created once its payment is confirmed, and a
// confirmed payment is consumed by exactly one account.
type SlotPayment struct {
	ID        int64             `json:"id"`
	Scope     DashboardScope    `json:"scope"`
	Role      StaffRole         `json:"role"`
	Amount    int64             `json:"amount"`
	Status    SlotPaymentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func ValidStaffRole(s string) bool {
	switch StaffRole(s) {
	case RoleAdmin, RoleManager, RoleEditor:
		return true
	}
	return false
}
