package handlers

import (
	"net/http"

	"quadras/middleware"
	"quadras/models"
	paymentSvc "quadras/services/payment"
	"quadras/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves charge creation, payment reads and the gateway
// webhook.
type PaymentHandler struct {
	Payments paymentSvc.PaymentService
}

// Create handles POST /payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req models.PaymentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Payments.Create(middleware.Actor(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Get handles GET /payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.Payments.Get(middleware.Actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Webhook handles POST /payments/webhook. The gateway retries on non-2xx, so
// processing failures are logged and acknowledged.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var hook models.GatewayWebhook
	if err := c.ShouldBindJSON(&hook); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Payments.HandleWebhook(&hook); err != nil {
		utils.GetLogger().Error("webhook processing failed",
			zap.String("gateway_id", hook.Data.ID),
			zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
