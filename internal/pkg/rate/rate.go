// Package rate derives night counts and totals from a room rate and a date
// range. All functions are pure; date-range validation happens at the booking
// boundary, not here.
package rate

import (
	"math"
	"time"
)

// Nights returns ceil((checkOut - checkIn) / 24h), never less than 1.
// Missing dates also yield 1; callers treat that as an incomplete quote.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 1
	}
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 1
	}
	n := int(math.Ceil(d.Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

// Total is the amount due for nights at unitPrice, in whole KES.
func Total(unitPrice int64, nights int) int64 {
	if unitPrice < 0 || nights < 1 {
		return 0
	}
	return unitPrice * int64(nights)
}

// NightlyRate recovers the per-night rate from a stored total. Edits reprice
// with this so a booking keeps its originally booked nightly price.
func NightlyRate(total int64, nights int) int64 {
	if nights < 1 {
		return total
	}
	return total / int64(nights)
}
