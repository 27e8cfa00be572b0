package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"nyumbastay/internal/domain"
	"nyumbastay/internal/pkg/ident"
	"nyumbastay/internal/pkg/rate"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const maxGuests = 20

type Service struct {
	reservations ReservationRepository
	rooms        RoomRepository
	notifs       NotificationSender
	now          func() time.Time
}

func NewService(reservations ReservationRepository, rooms RoomRepository, notifs NotificationSender) *Service {
	return &Service{
		reservations: reservations,
		rooms:        rooms,
		notifs:       notifs,
		now:          time.Now,
	}
}

// WithClock overrides the service clock; date-driven guest statuses are
// derived from it.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrValidation
	}
	if req.GuestCount < 1 || req.GuestCount > maxGuests {
		return nil, ErrValidation
	}
	if strings.TrimSpace(req.GuestName) == "" || strings.TrimSpace(req.GuestEmail) == "" || strings.TrimSpace(req.GuestPhone) == "" {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.Capacity > 0 && req.GuestCount > room.Capacity {
		return nil, ErrValidation
	}

	nights := rate.Nights(req.CheckIn, req.CheckOut)
	total := rate.Total(room.NightlyRate, nights)

	b := &domain.Reservation{
		BookingRef:    ident.New(ident.KindBooking),
		PropertyID:    room.PropertyID,
		RoomID:        room.ID,
		UserID:        req.UserID,
		RoomType:      room.RoomType,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Nights:        nights,
		GuestCount:    req.GuestCount,
		UnitPrice:     room.NightlyRate,
		TotalAmount:   total,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		ClientRef:     req.ClientRef,
	}

	if err := s.reservations.Create(ctx, b); err != nil {
		if isUniqueViolation(err) && req.ClientRef != "" {
			// Double submit: hand back the booking the first click minted.
			if existing, gerr := s.reservations.GetByClientRef(ctx, req.ClientRef); gerr == nil {
				return existing, ErrDuplicate
			}
			return nil, ErrDuplicate
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b.UserID, b.BookingRef)
	}

	return b, nil
}

// Get returns the guest projection: derived view status plus the
// disclosure-gated contact block, computed fresh on every read.
func (s *Service) Get(ctx context.Context, id int64) (*GuestView, error) {
	b, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	view := projectGuestView(b, room, s.now())
	return &view, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]GuestView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.reservations.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]GuestView, 0, len(rows))
	for i := range rows {
		b := rows[i]
		room, rerr := s.rooms.GetByID(ctx, b.RoomID)
		if rerr != nil && !errors.Is(rerr, gorm.ErrRecordNotFound) {
			return nil, rerr
		}
		out = append(out, projectGuestView(&b, room, now))
	}
	return out, nil
}

func (s *Service) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Reservation, error) {
	return s.reservations.ListByProperty(ctx, propertyID)
}

// Edit changes dates and guest count on a paid, not-yet-past reservation.
// The total is recomputed with the originally booked nightly rate, never a
// fresh quote.
func (s *Service) Edit(ctx context.Context, id int64, req EditReservationRequest) (*domain.Reservation, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrValidation
	}
	if req.GuestCount < 1 || req.GuestCount > maxGuests {
		return nil, ErrValidation
	}

	b, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.PaymentStatus != domain.PaymentPaid {
		return nil, ErrPaymentRequired
	}
	switch b.GuestStatusAt(s.now()) {
	case domain.GuestUpcoming, domain.GuestCurrent:
	default:
		return nil, ErrInvalidTransition
	}

	nightly := rate.NightlyRate(b.TotalAmount, b.Nights)
	expected := b.Version

	b.CheckIn = req.CheckIn
	b.CheckOut = req.CheckOut
	b.GuestCount = req.GuestCount
	b.Nights = rate.Nights(req.CheckIn, req.CheckOut)
	b.UnitPrice = nightly
	b.TotalAmount = rate.Total(nightly, b.Nights)

	ok, err := s.reservations.UpdateChecked(ctx, b, expected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVersionConflict
	}
	return b, nil
}

// Cancel moves an upcoming or current reservation to canceled. The request
// must carry the explicit confirmation flag, and the guest is notified once
// the cancellation commits.
func (s *Service) Cancel(ctx context.Context, id int64, req CancelReservationRequest) (*domain.Reservation, error) {
	if !req.Confirm {
		return nil, ErrCancelNotConfirmed
	}

	b, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch b.GuestStatusAt(s.now()) {
	case domain.GuestUpcoming, domain.GuestCurrent:
	case domain.GuestCancelled:
		return nil, ErrAlreadyInState
	default:
		return nil, ErrInvalidTransition
	}
	if b.Status == domain.BookingCompleted {
		return nil, ErrInvalidTransition
	}

	expected := b.Version
	now := s.now()
	b.Status = domain.BookingCanceled
	b.CancelledAt = &now
	b.CancellationReason = req.Reason

	ok, err := s.reservations.UpdateChecked(ctx, b, expected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVersionConflict
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b.UserID, b.BookingRef, req.Reason)
	}
	return b, nil
}

// SetStatus is the partner/operator transition along the canonical axis.
// Cancellation is destructive on every surface, so it demands the same
// explicit confirmation the guest path does.
func (s *Service) SetStatus(ctx context.Context, id int64, newStatus string, confirm bool) (*domain.Reservation, error) {
	if !domain.ValidBookingStatus(newStatus) {
		return nil, ErrValidation
	}
	target := domain.BookingStatus(newStatus)
	if target == domain.BookingCanceled && !confirm {
		return nil, ErrCancelNotConfirmed
	}

	b, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.Status == target {
		return nil, ErrAlreadyInState
	}
	if !domain.CanTransition(b.Status, target) {
		return nil, ErrInvalidTransition
	}

	if err := s.reservations.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	b.Status = target

	if s.notifs != nil {
		switch target {
		case domain.BookingConfirmed:
			_ = s.notifs.NotifyBookingConfirmed(ctx, b.UserID, b.BookingRef)
		case domain.BookingCanceled:
			_ = s.notifs.NotifyBookingCancelled(ctx, b.UserID, b.BookingRef, "")
		}
	}
	return b, nil
}

// Delete is the administrative override; the guest-facing surface never
// exposes it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) MessageProperty(ctx context.Context, id, partnerUserID int64, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrValidation
	}

	b, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyMessageToProperty(ctx, partnerUserID, b.BookingRef, message)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite in local dev
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
