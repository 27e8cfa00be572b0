package reservation

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
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations/:id", h.Get)
	rg.GET("/reservations", h.ListMine)
	rg.PATCH("/reservations/:id", h.Edit)
	rg.POST("/reservations/:id/cancel", h.Cancel)
	rg.POST("/reservations/:id/message", h.MessageProperty)
}

// RegisterPartnerRoutes mounts the partner/operator surface.
func (h *Handler) RegisterPartnerRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties/:id/reservations", h.ListByProperty)
	rg.PATCH("/reservations/:id/status", h.SetStatus)
	rg.DELETE("/reservations/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation details")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case ErrDuplicate:
			if b != nil {
				response.Success(c, http.StatusOK, gin.H{"reservation": b, "duplicate": true})
				return
			}
			response.Error(c, http.StatusConflict, "DUPLICATE_SUBMISSION", "Reservation already submitted")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": b})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": view})
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	views, err := h.service.ListMine(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": views})
}

func (h *Handler) ListByProperty(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	rows, err := h.service.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": rows})
}

func (h *Handler) Edit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	var req EditReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid dates or guest count")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrPaymentRequired:
			response.Error(c, http.StatusPaymentRequired, "PAYMENT_REQUIRED", "Pay for the reservation before editing")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "NOT_EDITABLE", "Past or cancelled reservations cannot be edited")
		case ErrVersionConflict:
			response.Error(c, http.StatusConflict, "VERSION_CONFLICT", "Reservation was modified by another request")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to edit reservation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	var req CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrCancelNotConfirmed:
			response.Error(c, http.StatusBadRequest, "CONFIRMATION_REQUIRED", "Cancellation must be confirmed")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrAlreadyInState:
			response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Reservation is already cancelled")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Past reservations cannot be cancelled")
		case ErrVersionConflict:
			response.Error(c, http.StatusConflict, "VERSION_CONFLICT", "Reservation was modified by another request")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel reservation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": b})
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.SetStatus(c.Request.Context(), id, req.Status, req.Confirm)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status")
		case ErrCancelNotConfirmed:
			response.Error(c, http.StatusBadRequest, "CONFIRMATION_REQUIRED", "Cancellation must be confirmed")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrAlreadyInState:
			response.Error(c, http.StatusConflict, "ALREADY_IN_STATUS", "Reservation is already in this status")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status change is not allowed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": b})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) MessageProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	var req MessagePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	partnerID := c.GetInt64("user_id")
	if err := h.service.MessageProperty(c.Request.Context(), id, partnerID, req.Message); err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message must not be empty")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to send message")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sent": true})
}
