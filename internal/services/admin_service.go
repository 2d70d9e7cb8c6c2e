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

// validStatusTransitions is the forward-only order lifecycle. An order moves
// strictly ahead; cancellation is only reachable before preparation starts.
var validStatusTransitions = map[string][]string{
	models.OrderStatusPending:        {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:      {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing:      {models.OrderStatusOutForDelivery},
	models.OrderStatusOutForDelivery: {models.OrderStatusDelivered},
	models.OrderStatusDelivered:      {},
	models.OrderStatusCancelled:      {},
}

func isValidTransition(from, to string) bool {
	for _, next := range validStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AdminService covers the privileged management surface: catalog, orders,
// users, and restaurant info.
type AdminService struct {
	db                 *gorm.DB
	categoryRepo       repositories.CategoryRepository
	menuItemRepo       repositories.MenuItemRepository
	orderRepo          repositories.OrderRepository
	userRepo           repositories.UserRepository
	restaurantInfoRepo repositories.RestaurantInfoRepository
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		db:                 db,
		categoryRepo:       repositories.NewCategoryRepository(db),
		menuItemRepo:       repositories.NewMenuItemRepository(db),
		orderRepo:          repositories.NewOrderRepository(db),
		userRepo:           repositories.NewUserRepository(db),
		restaurantInfoRepo: repositories.NewRestaurantInfoRepository(db),
	}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

type CreateMenuItemRequest struct {
	CategoryID             string           `json:"category_id" binding:"required"`
	Name                   string           `json:"name" binding:"required"`
	Description            string           `json:"description" binding:"required"`
	Price                  *decimal.Decimal `json:"price" binding:"required"`
	ImageURL               string           `json:"image_url"`
	IsAvailable            *bool            `json:"is_available"`
	PreparationTimeMinutes int              `json:"preparation_time_minutes"`
	Calories               int              `json:"calories"`
}

type UpdateMenuItemRequest struct {
	CategoryID             string           `json:"category_id"`
	Name                   string           `json:"name"`
	Description            *string          `json:"description"`
	Price                  *decimal.Decimal `json:"price"`
	ImageURL               *string          `json:"image_url"`
	IsAvailable            *bool            `json:"is_available"`
	PreparationTimeMinutes *int             `json:"preparation_time_minutes"`
	Calories               *int             `json:"calories"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpdateRestaurantInfoRequest struct {
	Name           string       `json:"name"`
	Address        *string      `json:"address"`
	Phone          *string      `json:"phone"`
	Email          *string      `json:"email"`
	LogoURL        *string      `json:"logo_url"`
	OperatingHours models.JSONB `json:"operating_hours"`
	DeliveryZones  models.JSONB `json:"delivery_zones"`
}

// Categories

func (s *AdminService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category name already exists", ErrConflict)
		}
		return nil, err
	}

	return category, nil
}

func (s *AdminService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *AdminService) UpdateCategory(ctx context.Context, categoryID string, req *UpdateCategoryRequest) (*models.Category, error) {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category ID", ErrInvalidInput)
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category not found", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category name already exists", ErrConflict)
		}
		return nil, err
	}

	return category, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, categoryID string) error {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return fmt.Errorf("%w: invalid category ID", ErrInvalidInput)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewCategoryRepository(tx)

		if _, err := repo.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category not found", ErrNotFound)
			}
			return err
		}

		count, err := repo.CountMenuItems(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: category has dependent menu items", ErrConflict)
		}

		return repo.Delete(ctx, id)
	})
}

// Menu items

func (s *AdminService) CreateMenuItem(ctx context.Context, req *CreateMenuItemRequest) (*models.MenuItem, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category ID", ErrInvalidInput)
	}
	if req.Price.Sign() <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category not found", ErrNotFound)
		}
		return nil, err
	}

	item := &models.MenuItem{
		CategoryID:             categoryID,
		Name:                   req.Name,
		Description:            req.Description,
		Price:                  *req.Price,
		ImageURL:               req.ImageURL,
		IsAvailable:            true,
		PreparationTimeMinutes: req.PreparationTimeMinutes,
		Calories:               req.Calories,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := s.menuItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *AdminService) GetAllMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.menuItemRepo.GetAll(ctx)
}

func (s *AdminService) UpdateMenuItem(ctx context.Context, itemID string, req *UpdateMenuItemRequest) (*models.MenuItem, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid menu item ID", ErrInvalidInput)
	}

	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item not found", ErrNotFound)
		}
		return nil, err
	}

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category ID", ErrInvalidInput)
		}
		if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category not found", ErrNotFound)
			}
			return nil, err
		}
		item.CategoryID = categoryID
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.Sign() <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
		}
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.PreparationTimeMinutes != nil {
		item.PreparationTimeMinutes = *req.PreparationTimeMinutes
	}
	if req.Calories != nil {
		item.Calories = *req.Calories
	}

	if err := s.menuItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *AdminService) DeleteMenuItem(ctx context.Context, itemID string) error {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return fmt.Errorf("%w: invalid menu item ID", ErrInvalidInput)
	}

	if _, err := s.menuItemRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: menu item not found", ErrNotFound)
		}
		return err
	}

	return s.menuItemRepo.Delete(ctx, id)
}

// Orders

func (s *AdminService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

func (s *AdminService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}

	return order, nil
}

// UpdateOrderStatus moves an order along the lifecycle. Marking a cash on
// delivery order delivered also settles its payment.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID string, req *UpdateOrderStatusRequest) (*models.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order ID", ErrInvalidInput)
	}

	switch req.Status {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusPreparing,
		models.OrderStatusOutForDelivery, models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	var updated *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepository(tx)
		paymentRepo := repositories.NewPaymentRepository(tx)

		order, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found", ErrNotFound)
			}
			return err
		}

		if !isValidTransition(order.Status, req.Status) {
			return fmt.Errorf("%w: cannot transition from %q to %q", ErrInvalidInput, order.Status, req.Status)
		}

		order.Status = req.Status

		if req.Status == models.OrderStatusDelivered &&
			order.PaymentMethod == models.MethodCashOnDelivery &&
			order.PaymentStatus != models.PaymentStatusPaid {
			order.PaymentStatus = models.PaymentStatusPaid

			existing, err := paymentRepo.GetByOrderID(ctx, order.ID)
			switch {
			case err == nil:
				existing.Status = models.PaymentSuccess
				if err := paymentRepo.Update(ctx, existing); err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				payment := &models.Payment{
					OrderID:              order.ID,
					Amount:               order.TotalAmount,
					GatewayTransactionID: fmt.Sprintf("COD-%s", order.ID),
					Status:               models.PaymentSuccess,
				}
				if err := paymentRepo.Create(ctx, payment); err != nil {
					return err
				}
			default:
				return err
			}
		}

		updated = order
		return orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Users

func (s *AdminService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *AdminService) UpdateUserRole(ctx context.Context, userID string, req *UpdateUserRoleRequest) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}

	switch req.Role {
	case models.RoleCustomer, models.RoleStaff, models.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, req.Role)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	user.Role = req.Role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Restaurant info

// GetRestaurantInfo returns the singleton info row, creating a default one
// on first read.
func (s *AdminService) GetRestaurantInfo(ctx context.Context) (*models.RestaurantInfo, error) {
	info, err := s.restaurantInfoRepo.GetFirst(ctx)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	info = &models.RestaurantInfo{Name: "My Restaurant"}
	if err := s.restaurantInfoRepo.Create(ctx, info); err != nil {
		return nil, err
	}

	return info, nil
}

func (s *AdminService) UpdateRestaurantInfo(ctx context.Context, req *UpdateRestaurantInfoRequest) (*models.RestaurantInfo, error) {
	info, err := s.GetRestaurantInfo(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		info.Name = req.Name
	}
	if req.Address != nil {
		info.Address = *req.Address
	}
	if req.Phone != nil {
		info.Phone = *req.Phone
	}
	if req.Email != nil {
		info.Email = *req.Email
	}
	if req.LogoURL != nil {
		info.LogoURL = *req.LogoURL
	}
	if req.OperatingHours != nil {
		info.OperatingHours = req.OperatingHours
	}
	if req.DeliveryZones != nil {
		info.DeliveryZones = req.DeliveryZones
	}

	if err := s.restaurantInfoRepo.Update(ctx, info); err != nil {
		return nil, err
	}

	return info, nil
}
