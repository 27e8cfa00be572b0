package repository

import (
	"context"
	"time"

	"nyumbastay/internal/domain"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) DB() *gorm.DB { return r.db }

type staffAccountModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	UserRef       string    `gorm:"column:user_ref;uniqueIndex"`
	Name          string    `gorm:"column:name"`
	Email         string    `gorm:"column:email;uniqueIndex"`
	PasswordHash  string    `gorm:"column:password_hash"`
	Role          string    `gorm:"column:role;index:idx_staff_scope_role"`
	Status        string    `gorm:"column:status"`
	Scope         string    `gorm:"column:scope;index:idx_staff_scope_role"`
	SlotPaymentID *int64    `gorm:"column:slot_payment_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (staffAccountModel) TableName() string { return "staff_accounts" }

type slotPaymentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Scope     string    `gorm:"column:scope"`
	Role      string    `gorm:"column:role"`
	Amount    int64     `gorm:"column:amount"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (slotPaymentModel) TableName() string { return "staff_slot_payments" }

func toDomainStaff(m staffAccountModel) *domain.StaffAccount {
	return &domain.StaffAccount{
		ID:            m.ID,
		UserRef:       m.UserRef,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Role:          domain.StaffRole(m.Role),
		Status:        domain.StaffStatus(m.Status),
		Scope:         domain.DashboardScope(m.Scope),
		SlotPaymentID: m.SlotPaymentID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toStaffModel(a *domain.StaffAccount) staffAccountModel {
	return staffAccountModel{
		ID:            a.ID,
		UserRef:       a.UserRef,
		Name:          a.Name,
		Email:         a.Email,
		PasswordHash:  a.PasswordHash,
		Role:          string(a.Role),
		Status:        string(a.Status),
		Scope:         string(a.Scope),
		SlotPaymentID: a.SlotPaymentID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toDomainSlotPayment(m slotPaymentModel) *domain.SlotPayment {
	return &domain.SlotPayment{
		ID:        m.ID,
		Scope:     domain.DashboardScope(m.Scope),
		Role:      domain.StaffRole(m.Role),
		Amount:    m.Amount,
		Status:    domain.SlotPaymentStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CountByRole counts active accounts for a role within a dashboard scope.
func (r *StaffRepository) CountByRole(ctx context.Context, scope domain.DashboardScope, role domain.StaffRole) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&staffAccountModel{}).
		Where("scope = ? AND role = ? AND status = ?", string(scope), string(role), string(domain.StaffActive)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *StaffRepository) Create(ctx context.Context, a *domain.StaffAccount) error {
	m := toStaffModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainStaff(m)
	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.StaffAccount, error) {
	var m staffAccountModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainStaff(m), nil
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	var m staffAccountModel
	tx := r.db.WithContext(ctx).Where("email = ?", email).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainStaff(m), nil
}

func (r *StaffRepository) ListByScope(ctx context.Context, scope domain.DashboardScope) ([]domain.StaffAccount, error) {
	var rows []staffAccountModel
	tx := r.db.WithContext(ctx).
		Where("scope = ?", string(scope)).
		Order("created_at ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.StaffAccount, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainStaff(m))
	}
	return out, nil
}

func (r *StaffRepository) UpdateStatus(ctx context.Context, id int64, status domain.StaffStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&staffAccountModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StaffRepository) CreateSlotPayment(ctx context.Context, p *domain.SlotPayment) error {
	m := slotPaymentModel{
		Scope:  string(p.Scope),
		Role:   string(p.Role),
		Amount: p.Amount,
		Status: string(p.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainSlotPayment(m)
	return nil
}

func (r *StaffRepository) GetSlotPayment(ctx context.Context, id int64) (*domain.SlotPayment, error) {
	var m slotPaymentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSlotPayment(m), nil
}

func (r *StaffRepository) UpdateSlotPaymentStatus(ctx context.Context, id int64, status domain.SlotPaymentStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&slotPaymentModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateWithSlotPayment consumes a confirmed slot payment and creates the
// account in one transaction; either both happen or neither does.
func (r *StaffRepository) CreateWithSlotPayment(ctx context.Context, a *domain.StaffAccount, paymentID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&slotPaymentModel{}).
			Where("id = ? AND status = ?", paymentID, string(domain.SlotPaymentConfirmedStatus)).
			Update("status", string(domain.SlotPaymentConsumedStatus))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		m := toStaffModel(a)
		m.SlotPaymentID = &paymentID
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*a = *toDomainStaff(m)
		return nil
	})
}

func (r *StaffRepository) Migrate() error {
	return r.db.AutoMigrate(&staffAccountModel{}, &slotPaymentModel{})
}
