package repository

import (
	"context"
	"time"

	"nyumbastay/internal/domain"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) DB() *gorm.DB { return r.db }

type transactionModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	TransactionRef string     `gorm:"column:transaction_ref;uniqueIndex"`
	ReservationID  int64      `gorm:"column:reservation_id;index"`
	BookingRef     string     `gorm:"column:booking_ref"`
	MpesaCode      string     `gorm:"column:mpesa_code;index"`
	CheckoutID     string     `gorm:"column:checkout_id;uniqueIndex"`
	PhoneNumber    string     `gorm:"column:phone_number"`
	Amount         int64      `gorm:"column:amount"`
	Status         string     `gorm:"column:status"`
	FailureReason  *string    `gorm:"column:failure_reason"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	SettledAt      *time.Time `gorm:"column:settled_at"`
}

func (transactionModel) TableName() string { return "transactions" }

func toDomainTransaction(m transactionModel) *domain.Transaction {
	var reason string
	if m.FailureReason != nil {
		reason = *m.FailureReason
	}

	return &domain.Transaction{
		ID:             m.ID,
		TransactionRef: m.TransactionRef,
		ReservationID:  m.ReservationID,
		BookingRef:     m.BookingRef,
		MpesaCode:      m.MpesaCode,
		CheckoutID:     m.CheckoutID,
		PhoneNumber:    m.PhoneNumber,
		Amount:         m.Amount,
		Status:         domain.TransactionStatus(m.Status),
		FailureReason:  reason,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		SettledAt:      m.SettledAt,
	}
}

func toTransactionModel(t *domain.Transaction) transactionModel {
	var reason *string
	if t.FailureReason != "" {
		v := t.FailureReason
		reason = &v
	}

	return transactionModel{
		ID:             t.ID,
		TransactionRef: t.TransactionRef,
		ReservationID:  t.ReservationID,
		BookingRef:     t.BookingRef,
		MpesaCode:      t.MpesaCode,
		CheckoutID:     t.CheckoutID,
		PhoneNumber:    t.PhoneNumber,
		Amount:         t.Amount,
		Status:         string(t.Status),
		FailureReason:  reason,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		SettledAt:      t.SettledAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	m := toTransactionModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTransaction(m)
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var m transactionModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTransaction(m), nil
}

func (r *TransactionRepository) GetByCheckoutID(ctx context.Context, checkoutID string) (*domain.Transaction, error) {
	var m transactionModel
	tx := r.db.WithContext(ctx).Where("checkout_id = ?", checkoutID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTransaction(m), nil
}

func (r *TransactionRepository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Transaction, error) {
	var m transactionModel
	tx := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTransaction(m), nil
}

// FindByCodeLike returns transactions whose M-Pesa code contains q,
// case-insensitive.
func (r *TransactionRepository) FindByCodeLike(ctx context.Context, q string, limit int) ([]domain.Transaction, error) {
	var rows []transactionModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(mpesa_code) LIKE ?", "%"+q+"%").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Transaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTransaction(m))
	}
	return out, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus, failureReason string, settledAt *time.Time) error {
	updates := map[string]any{
		"status":     string(status),
		"settled_at": settledAt,
	}
	if failureReason == "" {
		updates["failure_reason"] = nil
	} else {
		updates["failure_reason"] = failureReason
	}

	tx := r.db.WithContext(ctx).
		Model(&transactionModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Settle marks the transaction completed and the linked reservation paid in
// one database transaction; either both writes land or neither does.
func (r *TransactionRepository) Settle(ctx context.Context, id, reservationID int64, settledAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table("transactions").
			Where("id = ? AND status <> ?", id, string(domain.TransactionCompleted)).
			Updates(map[string]any{
				"status":         string(domain.TransactionCompleted),
				"failure_reason": nil,
				"settled_at":     settledAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		res = tx.Table("reservations").
			Where("id = ?", reservationID).
			Update("payment_status", string(domain.PaymentPaid))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ReverseSettlement is the inverse of Settle: the completed transaction goes
// back to failed and the reservation's payment status back to pending,
// atomically.
func (r *TransactionRepository) ReverseSettlement(ctx context.Context, id, reservationID int64, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table("transactions").
			Where("id = ? AND status = ?", id, string(domain.TransactionCompleted)).
			Updates(map[string]any{
				"status":         string(domain.TransactionFailed),
				"failure_reason": reason,
				"settled_at":     nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		res = tx.Table("reservations").
			Where("id = ?", reservationID).
			Update("payment_status", string(domain.PaymentPending))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *TransactionRepository) Migrate() error {
	return r.db.AutoMigrate(&transactionModel{})
}
