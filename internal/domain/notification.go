package domain

import (
	"encoding/json"
	"time"
)

type NotificationKind string

const (
	NotifBookingCreated    NotificationKind = "booking_created"
	NotifBookingConfirmed  NotificationKind = "booking_confirmed"
	NotifBookingCancelled  NotificationKind = "booking_cancelled"
	NotifPaymentSettled    NotificationKind = "payment_settled"
	NotifMessageToProperty NotificationKind = "message_to_property"
	NotifStaffProvisioned  NotificationKind = "staff_provisioned"
)

// Notification is a fire-and-forget event delivered to one recipient.
type Notification struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"user_id"`
	BookingRef string           `json:"booking_ref,omitempty"`
	Kind       NotificationKind `json:"kind"`
	Title      string           `json:"title"`
	Body       string           `json:"body,omitempty"`
	Data       json.RawMessage  `json:"data,omitempty"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}
