package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"restaurant-order-backend/internal/middleware"
	"restaurant-order-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// @Summary Initiate payment
// @Description Run the simulated gateway charge for an owned, unpaid order
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.InitiatePaymentRequest true "Payment initiation request"
// @Success 200 {object} services.PaymentResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/payments/initiate [post]
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.paymentService.InitiatePayment(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Payment webhook
// @Description Apply a gateway outcome; authenticated by HMAC signature of the raw body
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Webhook-Signature header string true "Hex HMAC-SHA256 of the body"
// @Param request body services.WebhookRequest true "Gateway webhook payload"
// @Success 200 {object} services.PaymentResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	// The signature covers the raw bytes, so the body is read before any
	// JSON decoding.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("X-Webhook-Signature")
	if !h.paymentService.VerifyWebhookSignature(body, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var req services.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.GatewayTransactionID == "" || req.Status == "" || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gateway_transaction_id, status and order_id are required"})
		return
	}

	result, err := h.paymentService.HandleWebhook(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	payments := router.Group("/payments")
	{
		payments.POST("/initiate", authMiddleware.AuthRequired(), h.InitiatePayment)
		payments.POST("/webhook", h.Webhook)
	}
}
