package staff

import (
	"context"

	"nyumbastay/internal/domain"
)

type StaffRepository interface {
	CountByRole(ctx context.Context, scope domain.DashboardScope, role domain.StaffRole) (int64, error)
	Create(ctx context.Context, a *domain.StaffAccount) error
	CreateWithSlotPayment(ctx context.Context, a *domain.StaffAccount, paymentID int64) error
	GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
	ListByScope(ctx context.Context, scope domain.DashboardScope) ([]domain.StaffAccount, error)
	UpdateStatus(ctx context.Context, id int64, status domain.StaffStatus) error
	CreateSlotPayment(ctx context.Context, p *domain.SlotPayment) error
	GetSlotPayment(ctx context.Context, id int64) (*domain.SlotPayment, error)
	UpdateSlotPaymentStatus(ctx context.Context, id int64, status domain.SlotPaymentStatus) error
}
