package domain

import "time"

// BookingStatus is the canonical operator-facing lifecycle axis. The
// guest-facing view (upcoming/current/past/cancelled) is derived from it
// plus the stay dates, never stored.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCheckedIn BookingStatus = "checked_in"
	BookingCompleted BookingStatus = "completed"
	BookingCanceled  BookingStatus = "canceled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// GuestStatus is the four-state view shown to the booking guest.
type GuestStatus string

const (
	GuestUpcoming  GuestStatus = "upcoming"
	GuestCurrent   GuestStatus = "current"
	GuestPast      GuestStatus = "past"
	GuestCancelled GuestStatus = "cancelled"
)

type Reservation struct {
	ID         int64  `json:"id"`
	BookingRef string `json:"booking_ref"`

	PropertyID int64  `json:"property_id" validate:"required"`
	RoomID     int64  `json:"room_id" validate:"required"`
	UserID     int64  `json:"user_id" validate:"required"`
	RoomType   string `json:"room_type"`

	CheckIn    time.Time `json:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" validate:"required"`
	Nights     int       `json:"nights"`
	GuestCount int       `json:"guest_count" validate:"required,gte=1,lte=20"`

	// KES, whole shillings. TotalAmount is always UnitPrice * Nights.
	UnitPrice   int64 `json:"unit_price" validate:"gte=0"`
	TotalAmount int64 `json:"total_amount"`

	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	// ClientRef is the caller-supplied idempotency key; a repeated submit
	// with the same key must not mint a second booking.
	ClientRef string `json:"client_ref,omitempty"`

	Review *Review `json:"review,omitempty" gorm:"foreignKey:ReservationID"`

	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// GuestStatusAt derives the guest view from the canonical state and the
// stay dates at the given instant.
func (r *Reservation) GuestStatusAt(now time.Time) GuestStatus {
	if r.Status == BookingCanceled {
		return GuestCancelled
	}
	if now.Before(r.CheckIn) {
		return GuestUpcoming
	}
	if now.Before(r.CheckOut) {
		return GuestCurrent
	}
	return GuestPast
}

// Terminal reports whether no further status transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCanceled
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCanceled},
	BookingConfirmed: {BookingCheckedIn, BookingCanceled},
	BookingCheckedIn: {BookingCompleted, BookingCanceled},
}

// CanTransition reports whether the operator axis allows from -> to.
// Same-status is never a legal transition; callers report it separately.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCompleted, BookingCanceled:
		return true
	}
	return false
}
