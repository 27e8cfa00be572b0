package staff

type ProvisionStaffRequest struct {
	Scope    string `json:"scope" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	// SlotPaymentID references a confirmed slot payment when the free
	// quota for the role is exhausted.
	SlotPaymentID *int64 `json:"slot_payment_id"`
}

type SlotPaymentRequest struct {
	Scope string `json:"scope" binding:"required"`
	Role  string `json:"role" binding:"required"`
}
