package reservation

import (
	"context"

	"nyumbastay/internal/domain"
)

// ReservationRepository defines the persistence operations the service needs.
type ReservationRepository interface {
	Create(ctx context.Context, b *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByBookingRef(ctx context.Context, ref string) (*domain.Reservation, error)
	GetByClientRef(ctx context.Context, clientRef string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.Reservation, error)
	UpdateChecked(ctx context.Context, b *domain.Reservation, expected int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
}

// RoomRepository supplies the chosen room; catalog search lives elsewhere.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// NotificationSender is the fire-and-forget event collaborator.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, userID int64, bookingRef string) error
	NotifyBookingConfirmed(ctx context.Context, userID int64, bookingRef string) error
	NotifyBookingCancelled(ctx context.Context, userID int64, bookingRef, reason string) error
	NotifyMessageToProperty(ctx context.Context, userID int64, bookingRef, message string) error
}
