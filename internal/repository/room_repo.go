package repository

import (
	"context"
	"time"

	"nyumbastay/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	PropertyID   int64     `gorm:"column:property_id;index"`
	RoomType     string    `gorm:"column:room_type"`
	NightlyRate  int64     `gorm:"column:nightly_rate"`
	Capacity     int       `gorm:"column:capacity"`
	ContactPhone string    `gorm:"column:contact_phone"`
	ContactEmail string    `gorm:"column:contact_email"`
	Address      string    `gorm:"column:address"`
	MapLink      string    `gorm:"column:map_link"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:           m.ID,
		PropertyID:   m.PropertyID,
		RoomType:     m.RoomType,
		NightlyRate:  m.NightlyRate,
		Capacity:     m.Capacity,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		Address:      m.Address,
		MapLink:      m.MapLink,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := roomModel{
		PropertyID:   room.PropertyID,
		RoomType:     room.RoomType,
		NightlyRate:  room.NightlyRate,
		Capacity:     room.Capacity,
		ContactPhone: room.ContactPhone,
		ContactEmail: room.ContactEmail,
		Address:      room.Address,
		MapLink:      room.MapLink,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) GetRateByID(ctx context.Context, id int64) (int64, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).Select("nightly_rate").First(&m, id)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return m.NightlyRate, nil
}

func (r *RoomRepository) Migrate() error {
	return r.db.AutoMigrate(&roomModel{})
}
