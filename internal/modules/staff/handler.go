package staff

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/staff", h.Provision)
	rg.GET("/staff", h.List)
	rg.POST("/staff/:id/deactivate", h.Deactivate)
	rg.POST("/staff/slot-payments", h.InitiateSlotPayment)
	rg.POST("/staff/slot-payments/:id/confirm", h.ConfirmSlotPayment)
	rg.POST("/staff/slot-payments/:id/cancel", h.CancelSlotPayment)
}

func (h *Handler) Provision(c *gin.Context) {
	var req ProvisionStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	acc, err := h.service.Provision(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid staff details")
		case ErrEmailTaken:
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists")
		case ErrQuotaExceeded:
			response.Error(c, http.StatusConflict, "LIMIT_REACHED", "Free slots for this role are taken; a slot payment is required")
		case ErrPaymentRequired:
			response.Error(c, http.StatusPaymentRequired, "PAYMENT_REQUIRED", "Slot payment has not been confirmed")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot payment not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to provision staff account")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"account": acc})
}

func (h *Handler) List(c *gin.Context) {
	scope := c.DefaultQuery("scope", "super_admin")

	accounts, err := h.service.List(c.Request.Context(), scope)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown dashboard scope")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list staff")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"accounts": accounts})
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid account id")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to deactivate account")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

func (h *Handler) InitiateSlotPayment(c *gin.Context) {
	var req SlotPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.InitiateSlotPayment(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid scope or role")
		case ErrPaymentNotRequired:
			response.Error(c, http.StatusConflict, "PAYMENT_NOT_REQUIRED", "Free slots are still available for this role")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to initiate slot payment")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func (h *Handler) ConfirmSlotPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment id")
		return
	}

	p, err := h.service.ConfirmSlotPayment(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot payment not found")
		case ErrValidation:
			response.Error(c, http.StatusConflict, "NOT_PENDING", "Slot payment is not pending")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to confirm slot payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

func (h *Handler) CancelSlotPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment id")
		return
	}

	if err := h.service.CancelSlotPayment(c.Request.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot payment not found")
		case ErrValidation:
			response.Error(c, http.StatusConflict, "NOT_PENDING", "Slot payment is not pending")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel slot payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}
