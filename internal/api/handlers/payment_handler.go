// server/internal/api/handlers/payment_handler.go
package handlers

import (
	"context"
	"net/http"

	"jeevan-api-server/internal/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Payments *payment.Client
	Logger   *zap.Logger
}

type CreateOrderRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"` // INR
}

// CreateOrder creates a Razorpay order for a monetary donation.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Payments.CreateOrder(context.Background(), req.Amount)
	if err != nil {
		h.Logger.Error("order creation failed", zap.Int64("amount", req.Amount), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment order"})
		return
	}

	c.JSON(http.StatusOK, order)
}
