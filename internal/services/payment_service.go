package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"restaurant-order-backend/internal/models"
	"restaurant-order-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService simulates a payment gateway. Initiation settles non-COD
// orders immediately; the webhook reconciles asynchronous gateway outcomes.
type PaymentService struct {
	db            *gorm.DB
	orderRepo     repositories.OrderRepository
	paymentRepo   repositories.PaymentRepository
	webhookSecret string
}

func NewPaymentService(db *gorm.DB, webhookSecret string) *PaymentService {
	return &PaymentService{
		db:            db,
		orderRepo:     repositories.NewOrderRepository(db),
		paymentRepo:   repositories.NewPaymentRepository(db),
		webhookSecret: webhookSecret,
	}
}

type InitiatePaymentRequest struct {
	OrderID       string       `json:"order_id" binding:"required"`
	MethodDetails models.JSONB `json:"method_details"`
}

type WebhookRequest struct {
	GatewayTransactionID string `json:"gateway_transaction_id" binding:"required"`
	Status               string `json:"status" binding:"required"`
	OrderID              string `json:"order_id" binding:"required"`
}

type PaymentResult struct {
	Payment *models.Payment `json:"payment"`
	Order   *models.Order   `json:"order"`
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature of the raw
// request body against the shared gateway secret.
func (s *PaymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// InitiatePayment settles a simulated gateway charge for an owned, unpaid
// order. Non-COD methods settle immediately; cash on delivery leaves the
// payment pending until the order is delivered.
func (s *PaymentService) InitiatePayment(ctx context.Context, userID string, req *InitiatePaymentRequest) (*PaymentResult, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrInvalidInput)
	}

	var result *PaymentResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepository(tx)
		paymentRepo := repositories.NewPaymentRepository(tx)

		order, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found or access denied", ErrNotFound)
			}
			return err
		}
		if order.UserID != userUUID {
			return fmt.Errorf("%w: order not found or access denied", ErrNotFound)
		}

		if order.PaymentStatus == models.PaymentStatusPaid {
			return fmt.Errorf("%w: order is already paid", ErrInvalidInput)
		}
		if _, err := paymentRepo.GetByOrderID(ctx, order.ID); err == nil {
			return fmt.Errorf("%w: payment already initiated for this order", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		transactionID := fmt.Sprintf("SIM-%s-%d", order.ID, time.Now().UnixNano())

		payment := &models.Payment{
			OrderID:              order.ID,
			Amount:               order.TotalAmount,
			GatewayTransactionID: transactionID,
			MethodDetails:        req.MethodDetails,
		}

		if order.PaymentMethod == models.MethodCashOnDelivery {
			payment.Status = models.PaymentPending
			order.Status = models.OrderStatusConfirmed
		} else {
			payment.Status = models.PaymentSuccess
			order.Status = models.OrderStatusConfirmed
			order.PaymentStatus = models.PaymentStatusPaid
		}

		if err := paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		result = &PaymentResult{Payment: payment, Order: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// HandleWebhook applies a gateway outcome to the matching payment. The
// handler has already verified the body signature.
func (s *PaymentService) HandleWebhook(ctx context.Context, req *WebhookRequest) (*PaymentResult, error) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrInvalidInput)
	}

	var result *PaymentResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepository(tx)
		paymentRepo := repositories.NewPaymentRepository(tx)

		payment, err := paymentRepo.GetByTransactionAndOrder(ctx, req.GatewayTransactionID, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment not found", ErrNotFound)
			}
			return err
		}

		order, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		switch req.Status {
		case models.PaymentSuccess:
			payment.Status = models.PaymentSuccess
			order.PaymentStatus = models.PaymentStatusPaid
			if order.Status == models.OrderStatusPending {
				order.Status = models.OrderStatusConfirmed
			}
			if err := orderRepo.Update(ctx, order); err != nil {
				return err
			}
		case models.PaymentFailed:
			payment.Status = models.PaymentFailed
			order.PaymentStatus = models.PaymentStatusFailed
			if err := orderRepo.Update(ctx, order); err != nil {
				return err
			}
		default:
			// Unknown gateway outcome; recorded verbatim, order untouched.
			payment.Status = req.Status
		}

		if err := paymentRepo.Update(ctx, payment); err != nil {
			return err
		}

		result = &PaymentResult{Payment: payment, Order: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
