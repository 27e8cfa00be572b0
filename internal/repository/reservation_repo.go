package repository

import (
	"context"
	"time"

	"nyumbastay/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// DB exposes the underlying handle for multi-table transactional updates.
func (r *ReservationRepository) DB() *gorm.DB { return r.db }

type reservationModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	BookingRef  string     `gorm:"column:booking_ref;uniqueIndex"`
	PropertyID  int64      `gorm:"column:property_id"`
	RoomID      int64      `gorm:"column:room_id"`
	UserID      int64      `gorm:"column:user_id"`
	RoomType    string     `gorm:"column:room_type"`
	CheckIn     time.Time  `gorm:"column:check_in"`
	CheckOut    time.Time  `gorm:"column:check_out"`
	Nights      int        `gorm:"column:nights"`
	GuestCount  int        `gorm:"column:guest_count"`
	UnitPrice   int64      `gorm:"column:unit_price"`
	TotalAmount int64      `gorm:"column:total_amount"`
	GuestName   string     `gorm:"column:guest_name"`
	GuestEmail  string     `gorm:"column:guest_email"`
	GuestPhone  string     `gorm:"column:guest_phone"`
	Status      string     `gorm:"column:status"`
	PaymentStatus string   `gorm:"column:payment_status"`
	ClientRef   *string    `gorm:"column:client_ref;uniqueIndex:idx_reservations_client_ref"`
	Version     int64      `gorm:"column:version"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	CancellationReason *string `gorm:"column:cancellation_reason"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var clientRef, reason string
	if m.ClientRef != nil {
		clientRef = *m.ClientRef
	}
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Reservation{
		ID:            m.ID,
		BookingRef:    m.BookingRef,
		PropertyID:    m.PropertyID,
		RoomID:        m.RoomID,
		UserID:        m.UserID,
		RoomType:      m.RoomType,
		CheckIn:       m.CheckIn,
		CheckOut:      m.CheckOut,
		Nights:        m.Nights,
		GuestCount:    m.GuestCount,
		UnitPrice:     m.UnitPrice,
		TotalAmount:   m.TotalAmount,
		GuestName:     m.GuestName,
		GuestEmail:    m.GuestEmail,
		GuestPhone:    m.GuestPhone,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		ClientRef:     clientRef,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CancelledAt:   m.CancelledAt,
		CancellationReason: reason,
	}
}

func toReservationModel(b *domain.Reservation) reservationModel {
	var clientRef, reason *string
	if b.ClientRef != "" {
		v := b.ClientRef
		clientRef = &v
	}
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return reservationModel{
		ID:            b.ID,
		BookingRef:    b.BookingRef,
		PropertyID:    b.PropertyID,
		RoomID:        b.RoomID,
		UserID:        b.UserID,
		RoomType:      b.RoomType,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Nights:        b.Nights,
		GuestCount:    b.GuestCount,
		UnitPrice:     b.UnitPrice,
		TotalAmount:   b.TotalAmount,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		GuestPhone:    b.GuestPhone,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		ClientRef:     clientRef,
		Version:       b.Version,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		CancelledAt:   b.CancelledAt,
		CancellationReason: reason,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, b *domain.Reservation) error {
	m := toReservationModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) GetByBookingRef(ctx context.Context, ref string) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).Where("booking_ref = ?", ref).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) GetByClientRef(ctx context.Context, clientRef string) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).Where("client_ref = ?", clientRef).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *ReservationRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("check_in ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// UpdateChecked persists the reservation only if the stored version still
// matches expected; it reports false when another writer got there first.
func (r *ReservationRepository) UpdateChecked(ctx context.Context, b *domain.Reservation, expected int64) (bool, error) {
	m := toReservationModel(b)
	m.Version = expected + 1

	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ? AND version = ?", b.ID, expected).
		Updates(map[string]any{
			"check_in":     m.CheckIn,
			"check_out":    m.CheckOut,
			"nights":       m.Nights,
			"guest_count":  m.GuestCount,
			"unit_price":   m.UnitPrice,
			"total_amount": m.TotalAmount,
			"status":       m.Status,
			"payment_status": m.PaymentStatus,
			"cancelled_at": m.CancelledAt,
			"cancellation_reason": m.CancellationReason,
			"version":      m.Version,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return false, nil
	}
	b.Version = m.Version
	return true, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *ReservationRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Reservation, error) {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Update("payment_status", string(status))
	if tx.Error != nil {
		return nil, tx.Error
	}
	return r.GetByID(ctx, id)
}

// Delete is the partner/operator administrative override; guests never reach it.
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&reservationModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByRefLike returns reservations whose booking ref contains q,
// case-insensitive.
func (r *ReservationRepository) FindByRefLike(ctx context.Context, q string, limit int) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(booking_ref) LIKE ?", "%"+q+"%").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// Migrate creates the reservations schema.
func (r *ReservationRepository) Migrate() error {
	return r.db.AutoMigrate(&reservationModel{})
}
