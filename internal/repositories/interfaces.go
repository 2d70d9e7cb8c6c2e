package repositories

import (
	"context"

	"restaurant-order-backend/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	UnsetDefaultAddresses(ctx context.Context, userID uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetActive(ctx context.Context) ([]models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountMenuItems(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	// GetAvailable returns available items whose category is active, with an
	// optional category filter and case-insensitive name substring search.
	GetAvailable(ctx context.Context, categoryID *uuid.UUID, search string) ([]models.MenuItem, error)
	GetAvailableByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	GetAvailableByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	GetByTransactionAndOrder(ctx context.Context, transactionID string, orderID uuid.UUID) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

type RestaurantInfoRepository interface {
	GetFirst(ctx context.Context) (*models.RestaurantInfo, error)
	Create(ctx context.Context, info *models.RestaurantInfo) error
	Update(ctx context.Context, info *models.RestaurantInfo) error
}
