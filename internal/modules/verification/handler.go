package verification

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
	rg.GET("/verification/search", h.Search)
	rg.POST("/verification/transactions/:id/force-complete", h.ForceComplete)
	rg.PATCH("/verification/reservations/:id/status", h.OverrideStatus)
}

func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query")
		return
	}

	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Provide a booking ref, user ref or M-Pesa code")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ForceComplete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid transaction id")
		return
	}

	t, err := h.service.ForceComplete(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found")
		case ErrNotFailed:
			response.Error(c, http.StatusConflict, "NOT_FAILED", "Only failed transactions can be force-completed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to force-complete transaction")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": t})
}

func (h *Handler) OverrideStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	var req OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.OverrideStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrAlreadyInState:
			response.Error(c, http.StatusConflict, "ALREADY_IN_STATUS", "Reservation is already in this status")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Reservation is in a terminal status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to override status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": b})
}
