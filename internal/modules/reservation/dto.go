package reservation

import "time"

type CreateReservationRequest struct {
	RoomID     int64     `json:"room_id" binding:"required"`
	UserID     int64     `json:"user_id" binding:"required"`
	CheckIn    time.Time `json:"check_in" binding:"required"`
	CheckOut   time.Time `json:"check_out" binding:"required"`
	GuestCount int       `json:"guest_count" binding:"required"`
	GuestName  string    `json:"guest_name" binding:"required"`
	GuestEmail string    `json:"guest_email" binding:"required"`
	GuestPhone string    `json:"guest_phone" binding:"required"`
	// ClientRef lets the storefront retry a submit without minting a
	// second booking.
	ClientRef string `json:"client_ref"`
}

type EditReservationRequest struct {
	CheckIn    time.Time `json:"check_in" binding:"required"`
	CheckOut   time.Time `json:"check_out" binding:"required"`
	GuestCount int       `json:"guest_count" binding:"required"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
	// Confirm must be true; cancellation is destructive and the surface has
	// to ask the guest first.
	Confirm bool `json:"confirm"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
	// Confirm must be set when Status is canceled, same as the guest path.
	Confirm bool `json:"confirm"`
}

type MessagePropertyRequest struct {
	Message string `json:"message" binding:"required"`
}

// ContactDetails is the partner contact block in guest views. While payment
// is pending every field carries a placeholder; the stored record keeps the
// real values.
type ContactDetails struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	MapLink string `json:"map_link"`
	Visible bool   `json:"visible"`
}

// GuestView is the reservation as the booking guest sees it: derived view
// status plus the disclosure-gated contact block.
type GuestView struct {
	ID            int64          `json:"id"`
	BookingRef    string         `json:"booking_ref"`
	RoomID        int64          `json:"room_id"`
	RoomType      string         `json:"room_type"`
	CheckIn       time.Time      `json:"check_in"`
	CheckOut      time.Time      `json:"check_out"`
	Nights        int            `json:"nights"`
	GuestCount    int            `json:"guest_count"`
	UnitPrice     int64          `json:"unit_price"`
	TotalAmount   int64          `json:"total_amount"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"payment_status"`
	Contact       ContactDetails `json:"contact"`
	CanEdit       bool           `json:"can_edit"`
	CanCancel     bool           `json:"can_cancel"`
	CanReview     bool           `json:"can_review"`
}
