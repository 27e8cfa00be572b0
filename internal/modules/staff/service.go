package staff

import (
	"context"
	"errors"
	"strings"

	"nyumbastay/internal/domain"
	"nyumbastay/internal/pkg/ident"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// freeSlots is the number of accounts per role a dashboard gets without
// paying the one-time slot fee. Editors are uncapped.
const freeSlots = 2

type Service struct {
	staff   StaffRepository
	slotFee int64
}

func NewService(staff StaffRepository, slotFee int64) *Service {
	return &Service{staff: staff, slotFee: slotFee}
}

func roleNeedsQuota(role domain.StaffRole) bool {
	return role == domain.RoleAdmin || role == domain.RoleManager
}

func parseScopeRole(scope, role string) (domain.DashboardScope, domain.StaffRole, error) {
	if !domain.ValidStaffRole(role) {
		return "", "", ErrValidation
	}
	switch domain.DashboardScope(scope) {
	case domain.ScopeSuperAdmin, domain.ScopeClient:
	default:
		return "", "", ErrValidation
	}
	return domain.DashboardScope(scope), domain.StaffRole(role), nil
}

// Provision creates a staff account. Admin and Manager roles have two free
// slots per scope; beyond that the request must reference a confirmed slot
// payment, and the payment is consumed together with the account creation.
// Nothing is created when payment is missing or unconfirmed.
func (s *Service) Provision(ctx context.Context, req ProvisionStaffRequest) (*domain.StaffAccount, error) {
	scope, role, err := parseScopeRole(req.Scope, req.Role)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || len(req.Password) < 8 {
		return nil, ErrValidation
	}

	if _, err := s.staff.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &domain.StaffAccount{
		UserRef:      ident.New(ident.KindUser),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.StaffActive,
		Scope:        scope,
	}

	if !roleNeedsQuota(role) {
		if err := s.staff.Create(ctx, acc); err != nil {
			return nil, err
		}
		return acc, nil
	}

	count, err := s.staff.CountByRole(ctx, scope, role)
	if err != nil {
		return nil, err
	}

	if count < freeSlots {
		if err := s.staff.Create(ctx, acc); err != nil {
			return nil, err
		}
		return acc, nil
	}

	// Free slots exhausted; only a confirmed payment unlocks the account.
	if req.SlotPaymentID == nil {
		return nil, ErrQuotaExceeded
	}

	p, err := s.staff.GetSlotPayment(ctx, *req.SlotPaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Scope != scope || p.Role != role {
		return nil, ErrValidation
	}
	if p.Status != domain.SlotPaymentConfirmedStatus {
		return nil, ErrPaymentRequired
	}

	if err := s.staff.CreateWithSlotPayment(ctx, acc, p.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Payment raced to consumed or cancelled.
			return nil, ErrPaymentRequired
		}
		return nil, err
	}
	return acc, nil
}

// InitiateSlotPayment mints a pending slot payment for a role whose free
// quota is exhausted. Under the quota there is nothing to pay for.
func (s *Service) InitiateSlotPayment(ctx context.Context, req SlotPaymentRequest) (*domain.SlotPayment, error) {
	scope, role, err := parseScopeRole(req.Scope, req.Role)
	if err != nil {
		return nil, err
	}
	if !roleNeedsQuota(role) {
		return nil, ErrPaymentNotRequired
	}

	count, err := s.staff.CountByRole(ctx, scope, role)
	if err != nil {
		return nil, err
	}
	if count < freeSlots {
		return nil, ErrPaymentNotRequired
	}

	p := &domain.SlotPayment{
		Scope:  scope,
		Role:   role,
		Amount: s.slotFee,
		Status: domain.SlotPaymentPendingStatus,
	}
	if err := s.staff.CreateSlotPayment(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ConfirmSlotPayment records the mocked settlement outcome.
func (s *Service) ConfirmSlotPayment(ctx context.Context, id int64) (*domain.SlotPayment, error) {
	p, err := s.staff.GetSlotPayment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Status != domain.SlotPaymentPendingStatus {
		return nil, ErrValidation
	}

	if err := s.staff.UpdateSlotPaymentStatus(ctx, id, domain.SlotPaymentConfirmedStatus); err != nil {
		return nil, err
	}
	p.Status = domain.SlotPaymentConfirmedStatus
	return p, nil
}

// CancelSlotPayment abandons a pending payment; no account is ever created
// from it.
func (s *Service) CancelSlotPayment(ctx context.Context, id int64) error {
	p, err := s.staff.GetSlotPayment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if p.Status != domain.SlotPaymentPendingStatus {
		return ErrValidation
	}
	return s.staff.UpdateSlotPaymentStatus(ctx, id, domain.SlotPaymentCancelledStatus)
}

func (s *Service) List(ctx context.Context, scope string) ([]domain.StaffAccount, error) {
	sc, _, err := parseScopeRole(scope, string(domain.RoleEditor))
	if err != nil {
		return nil, err
	}
	return s.staff.ListByScope(ctx, sc)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.staff.UpdateStatus(ctx, id, domain.StaffInactive); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
