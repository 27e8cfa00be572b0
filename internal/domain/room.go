package domain

import "time"

// Room is the unit a guest books: a room type at a property with a nightly
// rate. Catalog search lives outside this service; the core only consumes a
// chosen room.
type Room struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"property_id"`
	RoomType   string `json:"room_type"`
	// NightlyRate in KES, whole shillings.
	NightlyRate int64 `json:"nightly_rate"`
	Capacity    int   `json:"capacity"`

	// Partner contact block, masked in guest views until payment clears.
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	Address      string `json:"address"`
	MapLink      string `json:"map_link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
