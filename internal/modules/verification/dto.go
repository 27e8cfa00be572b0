package verification

import "nyumbastay/internal/domain"

type SearchQuery struct {
	BookingRef string `form:"booking_ref"`
	UserRef    string `form:"user_ref"`
	MpesaCode  string `form:"mpesa_code"`
}

func (q SearchQuery) Empty() bool {
	return q.BookingRef == "" && q.UserRef == "" && q.MpesaCode == ""
}

// SearchResult carries whichever criterion matched first. Criteria combine
// with OR semantics: the first field that yields matches wins.
type SearchResult struct {
	MatchedBy    string               `json:"matched_by"`
	Reservations []domain.Reservation `json:"reservations,omitempty"`
	Users        []domain.User        `json:"users,omitempty"`
	Transactions []domain.Transaction `json:"transactions,omitempty"`
}

type OverrideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
