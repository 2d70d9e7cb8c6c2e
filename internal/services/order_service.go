package services

import (
	"context"
	"errors"
	"fmt"

	"restaurant-order-backend/internal/models"
	"restaurant-order-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	db           *gorm.DB
	orderRepo    repositories.OrderRepository
	addressRepo  repositories.AddressRepository
	menuItemRepo repositories.MenuItemRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:           db,
		orderRepo:    repositories.NewOrderRepository(db),
		addressRepo:  repositories.NewAddressRepository(db),
		menuItemRepo: repositories.NewMenuItemRepository(db),
	}
}

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	DeliveryAddressID    string             `json:"delivery_address_id" binding:"required"`
	Items                []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod        string             `json:"payment_method"`
	DeliveryInstructions string             `json:"delivery_instructions"`
}

// CreateOrder validates the address and every requested item, snapshots
// prices, and writes the order plus its line items in a single transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req *CreateOrderRequest) (*models.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	addressID, err := uuid.Parse(req.DeliveryAddressID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid delivery address ID", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.MethodCashOnDelivery
	}

	var created *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		addressRepo := repositories.NewAddressRepository(tx)
		menuItemRepo := repositories.NewMenuItemRepository(tx)
		orderRepo := repositories.NewOrderRepository(tx)

		address, err := addressRepo.GetByID(ctx, addressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: delivery address not found or access denied", ErrNotFound)
			}
			return err
		}
		if address.UserID != userUUID {
			return fmt.Errorf("%w: delivery address not found or access denied", ErrNotFound)
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(req.Items))
		for _, itemReq := range req.Items {
			itemID, err := uuid.Parse(itemReq.MenuItemID)
			if err != nil {
				return fmt.Errorf("%w: invalid menu item ID", ErrInvalidInput)
			}
			if itemReq.Quantity < 1 {
				return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
			}

			// Ordering checks only the item's own availability; deactivating a
			// category hides items from browsing without blocking checkout.
			item, err := menuItemRepo.GetByID(ctx, itemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: menu item %s not found", ErrNotFound, itemID)
				}
				return err
			}
			if !item.IsAvailable {
				return fmt.Errorf("%w: menu item %s is not available", ErrNotFound, itemID)
			}

			subtotal := item.Price.Mul(decimal.NewFromInt(int64(itemReq.Quantity)))
			total = total.Add(subtotal)
			orderItems = append(orderItems, models.OrderItem{
				MenuItemID:   item.ID,
				Quantity:     itemReq.Quantity,
				PriceAtOrder: item.Price,
				Subtotal:     subtotal,
			})
		}

		order := &models.Order{
			UserID:               userUUID,
			DeliveryAddressID:    address.ID,
			TotalAmount:          total,
			Status:               models.OrderStatusPending,
			PaymentStatus:        models.PaymentStatusPending,
			PaymentMethod:        paymentMethod,
			DeliveryInstructions: req.DeliveryInstructions,
			OrderItems:           orderItems,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, created.ID)
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	return s.orderRepo.GetByUserID(ctx, userUUID)
}

// GetOrder returns an order only to its owner; for everyone else it behaves
// as if the order does not exist.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found or access denied", ErrNotFound)
		}
		return nil, err
	}
	if order.UserID != userUUID {
		return nil, fmt.Errorf("%w: order not found or access denied", ErrNotFound)
	}

	return order, nil
}

// CancelOrder lets the owner cancel while the kitchen has not started, that
// is while the order is still pending or confirmed.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrInvalidInput)
	}

	var cancelled *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepository(tx)

		order, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found or access denied", ErrNotFound)
			}
			return err
		}
		if order.UserID != userUUID {
			return fmt.Errorf("%w: order not found or access denied", ErrNotFound)
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
			return fmt.Errorf("%w: order cannot be cancelled in status %q", ErrInvalidInput, order.Status)
		}

		order.Status = models.OrderStatusCancelled
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cancelled, nil
}
