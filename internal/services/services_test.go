package services

import (
	"context"
	"testing"

	"restaurant-order-backend/internal/models"
	"restaurant-order-backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string, active bool) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, IsActive: active}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestMenuItem(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name, price string, available bool) *models.MenuItem {
	t.Helper()

	item := &models.MenuItem{
		CategoryID:  categoryID,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func createTestAddress(t *testing.T, db *gorm.DB, userID uuid.UUID, isDefault bool) *models.Address {
	t.Helper()

	address := &models.Address{
		UserID:       userID,
		AddressLine1: "42 Test Street",
		City:         "Testville",
		PostalCode:   "12345",
		Country:      "Testland",
		IsDefault:    isDefault,
	}
	require.NoError(t, db.Create(address).Error)
	return address
}

// placeTestOrder goes through the order service so snapshots and totals are
// computed the same way production orders are.
func placeTestOrder(t *testing.T, db *gorm.DB, user *models.User, address *models.Address, paymentMethod string, items ...OrderItemRequest) *models.Order {
	t.Helper()

	order, err := NewOrderService(db).CreateOrder(context.Background(), user.ID.String(), &CreateOrderRequest{
		DeliveryAddressID: address.ID.String(),
		Items:             items,
		PaymentMethod:     paymentMethod,
	})
	require.NoError(t, err)
	return order
}
