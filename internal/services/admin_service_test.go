package services

import (
	"context"
	"fmt"
	"testing"

	"restaurant-order-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCategoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, &CreateCategoryRequest{Name: "Mains"})
	require.NoError(t, err)
	assert.True(t, category.IsActive)

	// Duplicate name.
	_, err = service.CreateCategory(ctx, &CreateCategoryRequest{Name: "Mains"})
	assert.ErrorIs(t, err, ErrConflict)

	inactive := false
	updated, err := service.UpdateCategory(ctx, category.ID.String(), &UpdateCategoryRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// Admin listing includes inactive categories.
	createTestCategory(t, db, "Drinks", true)
	categories, err := service.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	require.NoError(t, service.DeleteCategory(ctx, category.ID.String()))
}

func TestDeleteCategoryWithItems(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Mains", true)
	createTestMenuItem(t, db, category.ID, "Burger", "10.00", true)

	err := service.DeleteCategory(ctx, category.ID.String())
	assert.ErrorIs(t, err, ErrConflict)

	// Category survives the rejected delete.
	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAdminMenuItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Mains", true)
	price := decimal.RequireFromString("9.50")

	item, err := service.CreateMenuItem(ctx, &CreateMenuItemRequest{
		CategoryID:  category.ID.String(),
		Name:        "Burger",
		Description: "A burger",
		Price:       &price,
	})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)

	// Creating an item flagged unavailable keeps it unavailable in the store.
	hidden := false
	offMenu, err := service.CreateMenuItem(ctx, &CreateMenuItemRequest{
		CategoryID:  category.ID.String(),
		Name:        "Off Menu",
		Description: "Not yet launched",
		Price:       &price,
		IsAvailable: &hidden,
	})
	require.NoError(t, err)

	var stored models.MenuItem
	require.NoError(t, db.First(&stored, "id = ?", offMenu.ID).Error)
	assert.False(t, stored.IsAvailable)

	newPrice := decimal.RequireFromString("11.00")
	unavailable := false
	updated, err := service.UpdateMenuItem(ctx, item.ID.String(), &UpdateMenuItemRequest{
		Price:       &newPrice,
		IsAvailable: &unavailable,
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "Burger", updated.Name)

	// Unknown category on create.
	_, err = service.CreateMenuItem(ctx, &CreateMenuItemRequest{
		CategoryID:  "00000000-0000-0000-0000-000000000000",
		Name:        "Ghost",
		Description: "x",
		Price:       &price,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, service.DeleteMenuItem(ctx, item.ID.String()))
	_, err = service.UpdateMenuItem(ctx, item.ID.String(), &UpdateMenuItemRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateOrderStatusGraph(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice", models.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	category := createTestCategory(t, db, "Mains", true)
	burger := createTestMenuItem(t, db, category.ID, "Burger", "10.00", true)

	order := placeTestOrder(t, db, user, address, "card", OrderItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})

	// Skipping ahead is rejected.
	_, err := service.UpdateOrderStatus(ctx, order.ID.String(), &UpdateOrderStatusRequest{Status: models.OrderStatusDelivered})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Unknown status is rejected.
	_, err = service.UpdateOrderStatus(ctx, order.ID.String(), &UpdateOrderStatusRequest{Status: "teleported"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// The full forward path works.
	for _, status := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered,
	} {
		updated, err := service.UpdateOrderStatus(ctx, order.ID.String(), &UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	// Delivered is terminal.
	_, err = service.UpdateOrderStatus(ctx, order.ID.String(), &UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// No backwards move out of preparing either.
	order2 := placeTestOrder(t, db, user, address, "card", OrderItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})
	_, err = service.UpdateOrderStatus(ctx, order2.ID.String(), &UpdateOrderStatusRequest{Status: models.OrderStatusConfirmed})
	require.NoError(t, err)
	_, err = service.UpdateOrderStatus(ctx, order2.ID.String(), &UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	require.NoError(t, err)
	_, err = service.UpdateOrderStatus(ctx, order2.ID.String(), &UpdateOrderStatusRequest{Status: models.OrderStatusCancelled})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeliveredCODSettlesPayment(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice", models.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	category := createTestCategory(t, db, "Mains", true)
	burger := createTestMenuItem(t, db, category.ID, "Burger", "10.00", true)

	order := placeTestOrder(t, db, user, address, models.MethodCashOnDelivery, OrderItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})

	for _, status := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusOutForDelivery,
	} {
		_, err := service.UpdateOrderStatus(ctx, order.ID.String(), &UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err)
	}

	delivered, err := service.UpdateOrderStatus(ctx, order.ID.String(), &UpdateOrderStatusRequest{Status: models.OrderStatusDelivered})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, delivered.PaymentStatus)

	var payments []models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentSuccess, payments[0].Status)
	assert.Equal(t, fmt.Sprintf("COD-%s", order.ID), payments[0].GatewayTransactionID)
	assert.True(t, payments[0].Amount.Equal(order.TotalAmount))
}

func TestDeliveredCODReusesExistingPayment(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	paymentService := NewPaymentService(db, testWebhookSecret)
	ctx := context.Background()

	user := createTestUser(t, db, "alice", models.RoleCustomer)
	address := createTestAddress(t, db, user.ID, true)
	category := createTestCategory(t, db, "Mains", true)
	burger := createTestMenuItem(t, db, category.ID, "Burger", "10.00", true)

	order := placeTestOrder(t, db, user, address, models.MethodCashOnDelivery, OrderItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})

	// Customer already ran initiate, so a pending COD payment row exists.
	initiated, err := paymentService.InitiatePayment(ctx, user.ID.String(), &InitiatePaymentRequest{OrderID: order.ID.String()})
	require.NoError(t, err)

	for _, status := range []string{
		models.OrderStatusPreparing,
		models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered,
	} {
		_, err := service.UpdateOrderStatus(ctx, order.ID.String(), &UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err)
	}

	// The existing row was settled instead of a second one appearing.
	var payments []models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, initiated.Payment.ID, payments[0].ID)
	assert.Equal(t, models.PaymentSuccess, payments[0].Status)
}

func TestUpdateUserRole(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice", models.RoleCustomer)

	updated, err := service.UpdateUserRole(ctx, user.ID.String(), &UpdateUserRoleRequest{Role: models.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, updated.Role)

	_, err = service.UpdateUserRole(ctx, user.ID.String(), &UpdateUserRoleRequest{Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.UpdateUserRole(ctx, "00000000-0000-0000-0000-000000000000", &UpdateUserRoleRequest{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestaurantInfoLazyCreate(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	info, err := service.GetRestaurantInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Restaurant", info.Name)

	// Second read returns the same row, not another default.
	again, err := service.GetRestaurantInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, info.ID, again.ID)

	phone := "555-0100"
	updated, err := service.UpdateRestaurantInfo(ctx, &UpdateRestaurantInfoRequest{
		Name:  "Casa Test",
		Phone: &phone,
		OperatingHours: models.JSONB{
			"mon": "9-17",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Casa Test", updated.Name)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "9-17", updated.OperatingHours["mon"])

	var count int64
	require.NoError(t, db.Model(&models.RestaurantInfo{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
