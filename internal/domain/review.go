package domain

import "time"

// Review is attached to a reservation once the stay is over. One review per
// reservation; edits overwrite in place, reviews are never deleted.
type Review struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id" gorm:"uniqueIndex"`
	UserID        int64     `json:"user_id"`
	Rating        int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       string    `json:"comment" validate:"required"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
