package repository

import (
	"context"
	"time"

	"nyumbastay/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	ReservationID int64     `gorm:"column:reservation_id;uniqueIndex"`
	UserID        int64     `gorm:"column:user_id"`
	Rating        int       `gorm:"column:rating"`
	Comment       string    `gorm:"column:comment"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		UserID:        m.UserID,
		Rating:        m.Rating,
		Comment:       m.Comment,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// Upsert writes the review, overwriting rating and comment when one already
// exists for the reservation.
func (r *ReviewRepository) Upsert(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		ReservationID: rv.ReservationID,
		UserID:        rv.UserID,
		Rating:        rv.Rating,
		Comment:       rv.Comment,
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reservation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).
		Create(&m)
	if tx.Error != nil {
		return tx.Error
	}

	var saved reviewModel
	if err := r.db.WithContext(ctx).Where("reservation_id = ?", rv.ReservationID).First(&saved).Error; err != nil {
		return err
	}
	*rv = *toDomainReview(saved)
	return nil
}

func (r *ReviewRepository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) Migrate() error {
	return r.db.AutoMigrate(&reviewModel{})
}
