package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"restaurant-order-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWebhookSecret = "test-webhook-secret"

func signWebhookBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func setupPaymentTest(t *testing.T, paymentMethod string) (*gorm.DB, *PaymentService, *models.User, *models.Order) {
	t.Helper()

	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", models.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	category := createTestCategory(t, db, "Mains", true)
	burger := createTestMenuItem(t, db, category.ID, "Burger", "10.00", true)

	order := placeTestOrder(t, db, user, address, paymentMethod, OrderItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})
	return db, NewPaymentService(db, testWebhookSecret), user, order
}

func TestInitiatePaymentCard(t *testing.T) {
	_, service, user, order := setupPaymentTest(t, "card")
	ctx := context.Background()

	result, err := service.InitiatePayment(ctx, user.ID.String(), &InitiatePaymentRequest{
		OrderID:       order.ID.String(),
		MethodDetails: models.JSONB{"last4": "4242"},
	})
	require.NoError(t, err)

	// Card payments settle immediately in the simulated gateway.
	assert.Equal(t, models.PaymentSuccess, result.Payment.Status)
	assert.Equal(t, models.PaymentStatusPaid, result.Order.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, result.Order.Status)
	assert.True(t, strings.HasPrefix(result.Payment.GatewayTransactionID, "SIM-"))
	assert.True(t, result.Payment.Amount.Equal(order.TotalAmount))
}

func TestInitiatePaymentCOD(t *testing.T) {
	_, service, user, order := setupPaymentTest(t, models.MethodCashOnDelivery)
	ctx := context.Background()

	result, err := service.InitiatePayment(ctx, user.ID.String(), &InitiatePaymentRequest{
		OrderID: order.ID.String(),
	})
	require.NoError(t, err)

	// Cash settles at the door, so the order confirms but stays unpaid.
	assert.Equal(t, models.PaymentPending, result.Payment.Status)
	assert.Equal(t, models.PaymentStatusPending, result.Order.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, result.Order.Status)
}

func TestInitiatePaymentGuards(t *testing.T) {
	db, service, user, order := setupPaymentTest(t, "card")
	ctx := context.Background()

	bob := createTestUser(t, db, "bob", models.RoleCustomer)

	// Not the owner.
	_, err := service.InitiatePayment(ctx, bob.ID.String(), &InitiatePaymentRequest{OrderID: order.ID.String()})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.InitiatePayment(ctx, user.ID.String(), &InitiatePaymentRequest{OrderID: order.ID.String()})
	require.NoError(t, err)

	// Second initiation is rejected, the order is already paid.
	_, err = service.InitiatePayment(ctx, user.ID.String(), &InitiatePaymentRequest{OrderID: order.ID.String()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVerifyWebhookSignature(t *testing.T) {
	db := setupTestDB(t)
	service := NewPaymentService(db, testWebhookSecret)

	body := []byte(`{"order_id":"x"}`)
	assert.True(t, service.VerifyWebhookSignature(body, signWebhookBody(body)))
	assert.False(t, service.VerifyWebhookSignature(body, "deadbeef"))
	assert.False(t, service.VerifyWebhookSignature(body, ""))
	assert.False(t, service.VerifyWebhookSignature([]byte(`{"order_id":"y"}`), signWebhookBody(body)))
}

func TestWebhookOutcomes(t *testing.T) {
	tests := []struct {
		name              string
		webhookStatus     string
		wantPayment       string
		wantOrderPayment  string
		wantOrderStatus   string
	}{
		{"success", models.PaymentSuccess, models.PaymentSuccess, models.PaymentStatusPaid, models.OrderStatusConfirmed},
		{"failed", models.PaymentFailed, models.PaymentFailed, models.PaymentStatusFailed, models.OrderStatusConfirmed},
		{"unknown outcome", "on_hold", "on_hold", models.PaymentStatusPending, models.OrderStatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, service, user, order := setupPaymentTest(t, models.MethodCashOnDelivery)
			ctx := context.Background()

			initiated, err := service.InitiatePayment(ctx, user.ID.String(), &InitiatePaymentRequest{OrderID: order.ID.String()})
			require.NoError(t, err)

			result, err := service.HandleWebhook(ctx, &WebhookRequest{
				GatewayTransactionID: initiated.Payment.GatewayTransactionID,
				Status:               tt.webhookStatus,
				OrderID:              order.ID.String(),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPayment, result.Payment.Status)
			assert.Equal(t, tt.wantOrderPayment, result.Order.PaymentStatus)
			assert.Equal(t, tt.wantOrderStatus, result.Order.Status)
		})
	}
}

func TestWebhookUnknownPayment(t *testing.T) {
	_, service, _, order := setupPaymentTest(t, "card")

	_, err := service.HandleWebhook(context.Background(), &WebhookRequest{
		GatewayTransactionID: "SIM-unknown",
		Status:               models.PaymentSuccess,
		OrderID:              order.ID.String(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
