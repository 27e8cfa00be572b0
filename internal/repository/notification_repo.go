package repository

import (
	"context"
	"encoding/json"
	"time"

	"nyumbastay/internal/domain"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;index:idx_notifications_user_unread"`
	BookingRef string    `gorm:"column:booking_ref"`
	Kind       string    `gorm:"column:kind"`
	Title      string    `gorm:"column:title"`
	Body       string    `gorm:"column:body"`
	Data       []byte    `gorm:"column:data"`
	IsRead     bool      `gorm:"column:is_read;index:idx_notifications_user_unread"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) *domain.Notification {
	return &domain.Notification{
		ID:         m.ID,
		UserID:     m.UserID,
		BookingRef: m.BookingRef,
		Kind:       domain.NotificationKind(m.Kind),
		Title:      m.Title,
		Body:       m.Body,
		Data:       json.RawMessage(m.Data),
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := notificationModel{
		UserID:     n.UserID,
		BookingRef: n.BookingRef,
		Kind:       string(n.Kind),
		Title:      n.Title,
		Body:       n.Body,
		Data:       []byte(n.Data),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*n = *toDomainNotification(m)
	return nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	var rows []notificationModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) Migrate() error {
	return r.db.AutoMigrate(&notificationModel{})
}
