package reservation

import (
	"time"

	"nyumbastay/internal/domain"
)

// maskedValue is what the guest sees in place of partner contact details
// until payment clears.
const maskedValue = "Available after payment"

// projectGuestView computes the guest projection at the given instant. It is
// a pure function of the reservation and room: nothing here is cached, so a
// payment reversal re-locks the contact block on the next read.
func projectGuestView(b *domain.Reservation, room *domain.Room, now time.Time) GuestView {
	status := b.GuestStatusAt(now)

	v := GuestView{
		ID:            b.ID,
		BookingRef:    b.BookingRef,
		RoomID:        b.RoomID,
		RoomType:      b.RoomType,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Nights:        b.Nights,
		GuestCount:    b.GuestCount,
		UnitPrice:     b.UnitPrice,
		TotalAmount:   b.TotalAmount,
		Status:        string(status),
		PaymentStatus: string(b.PaymentStatus),
		Contact:       discloseContact(room, b.PaymentStatus),
	}

	paid := b.PaymentStatus == domain.PaymentPaid
	active := status == domain.GuestUpcoming || status == domain.GuestCurrent
	v.CanEdit = paid && active
	v.CanCancel = active
	v.CanReview = status == domain.GuestPast

	return v
}

// discloseContact is the disclosure gate: a projection of payment status
// over the partner contact block. The record keeps the real values; only
// the rendering changes.
func discloseContact(room *domain.Room, payment domain.PaymentStatus) ContactDetails {
	if payment != domain.PaymentPaid || room == nil {
		return ContactDetails{
			Phone:   maskedValue,
			Email:   maskedValue,
			Address: maskedValue,
			MapLink: maskedValue,
			Visible: false,
		}
	}

	return ContactDetails{
		Phone:   room.ContactPhone,
		Email:   room.ContactEmail,
		Address: room.Address,
		MapLink: room.MapLink,
		Visible: true,
	}
}
