package api

import (
	"net/http"

	reqdto "coupon-wallet-service/internal/handler/dto/request"
	resdto "coupon-wallet-service/internal/handler/dto/response"
	"coupon-wallet-service/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	webhookCommands commands.WebhookCommands
}

func NewWebhookHandler(webhookCommands commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{
		webhookCommands: webhookCommands,
	}
}

// @Summary Payment webhook
// @Description Receive a payment-processor event and apply it to the store subscription
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentWebhookRequest true "Webhook payload"
// @Success 200 {object} resdto.WebhookAckResponse
// @Success 202 {object} resdto.WebhookAckResponse
// @Failure 400 {object} map[string]string
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	ack, err := h.webhookCommands.ProcessPaymentWebhook(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Unmatched and ignored events are acknowledged, not errored, so the
	// processor does not retry them.
	status := http.StatusOK
	if ack == commands.AckUnmatched || ack == commands.AckIgnored {
		status = http.StatusAccepted
	}
	c.JSON(status, resdto.WebhookAckResponse{Result: string(ack)})
}
