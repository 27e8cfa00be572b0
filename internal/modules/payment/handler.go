package payment

import (
	"net/http"
	"strconv"

	"nyumbastay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type initiateRequest struct {
	ReservationID int64  `json:"reservation_id" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
}

type callbackRequest struct {
	CheckoutID    string `json:"checkout_id" binding:"required"`
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/stk-push", h.Initiate)
}

// RegisterCallbackRoutes mounts the gateway callback, which arrives without a
// user token.
func (h *Handler) RegisterCallbackRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/callback", h.Callback)
}

func (h *Handler) RegisterOperatorRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/:id/reverse", h.Reverse)
}

func (h *Handler) Initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.InitiateSTKPush(c.Request.Context(), req.ReservationID, req.Phone)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Phone number is required")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrAlreadyPaid:
			response.Error(c, http.StatusConflict, "ALREADY_PAID", "Reservation is already paid")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to initiate payment")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": t})
}

func (h *Handler) Callback(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.HandleCallback(c.Request.Context(), req.CheckoutID, req.Success, req.FailureReason)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown checkout id")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process callback")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": t})
}

func (h *Handler) Reverse(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid transaction id")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	t, err := h.service.Reverse(c.Request.Context(), id, body.Reason)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found")
		case ErrNotReversible:
			response.Error(c, http.StatusConflict, "NOT_REVERSIBLE", "Only completed transactions can be reversed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reverse transaction")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": t})
}
