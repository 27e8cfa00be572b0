package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"nyumbastay/internal/domain"

	"gorm.io/gorm"
)

// ReservationGate supplies the reservation a review attaches to; eligibility
// is decided here, off its derived guest status.
type ReservationGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

type ReviewRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Review, error)
	Upsert(ctx context.Context, rv *domain.Review) error
}

type Service struct {
	reviews      ReviewRepository
	reservations ReservationGate
	now          func() time.Time
}

func NewService(reviews ReviewRepository, reservations ReservationGate) *Service {
	return &Service{reviews: reviews, reservations: reservations, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit attaches a review to a past reservation, or overwrites the one
// already there. Resubmission never duplicates; reviews are never deleted.
func (s *Service) Submit(ctx context.Context, userID, reservationID int64, req SubmitReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, ErrInvalidRequest
	}

	b, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.GuestStatusAt(s.now()) != domain.GuestPast {
		return nil, ErrNotEligible
	}

	rv := &domain.Review{
		ReservationID: reservationID,
		UserID:        userID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := s.reviews.Upsert(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) GetForReservation(ctx context.Context, reservationID int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}
