package services

import (
	"context"
	"testing"

	"restaurant-order-backend/internal/models"
	"restaurant-order-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(repositories.NewCategoryRepository(db), repositories.NewMenuItemRepository(db))
}

func TestVisibilityFlagsStored(t *testing.T) {
	db := setupTestDB(t)

	retired := createTestCategory(t, db, "Retired", false)
	soldOut := createTestMenuItem(t, db, retired.ID, "Sold Out", "5.00", false)

	// A false flag must survive the insert untouched.
	var category models.Category
	require.NoError(t, db.First(&category, "id = ?", retired.ID).Error)
	assert.False(t, category.IsActive)

	var item models.MenuItem
	require.NoError(t, db.First(&item, "id = ?", soldOut.ID).Error)
	assert.False(t, item.IsAvailable)
}

func TestListActiveCategories(t *testing.T) {
	db := setupTestDB(t)
	service := newTestCatalogService(db)

	active := createTestCategory(t, db, "Mains", true)
	createTestCategory(t, db, "Retired", false)

	categories, err := service.ListActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, active.ID, categories[0].ID)
}

func TestListCategoryItems(t *testing.T) {
	db := setupTestDB(t)
	service := newTestCatalogService(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Mains", true)
	inactive := createTestCategory(t, db, "Retired", false)
	visible := createTestMenuItem(t, db, category.ID, "Burger", "9.50", true)
	createTestMenuItem(t, db, category.ID, "Off menu", "5.00", false)

	items, err := service.ListCategoryItems(ctx, category.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, visible.ID, items[0].ID)

	// Inactive categories 404 even though the row exists.
	_, err = service.ListCategoryItems(ctx, inactive.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.ListCategoryItems(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListAvailableItems(t *testing.T) {
	db := setupTestDB(t)
	service := newTestCatalogService(db)
	ctx := context.Background()

	mains := createTestCategory(t, db, "Mains", true)
	drinks := createTestCategory(t, db, "Drinks", true)
	retired := createTestCategory(t, db, "Retired", false)

	burger := createTestMenuItem(t, db, mains.ID, "Cheese Burger", "9.50", true)
	cola := createTestMenuItem(t, db, drinks.ID, "Cola", "2.50", true)
	createTestMenuItem(t, db, mains.ID, "Sold Out Special", "15.00", false)
	createTestMenuItem(t, db, retired.ID, "Old Burger", "8.00", true)

	// No filter: available items of active categories only.
	items, err := service.ListAvailableItems(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Category filter.
	items, err = service.ListAvailableItems(ctx, drinks.ID.String(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, cola.ID, items[0].ID)

	// Case-insensitive name search.
	items, err = service.ListAvailableItems(ctx, "", "bUrGer")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, burger.ID, items[0].ID)
}

func TestGetItemDetail(t *testing.T) {
	db := setupTestDB(t)
	service := newTestCatalogService(db)
	ctx := context.Background()

	mains := createTestCategory(t, db, "Mains", true)
	retired := createTestCategory(t, db, "Retired", false)
	burger := createTestMenuItem(t, db, mains.ID, "Burger", "9.50", true)
	soldOut := createTestMenuItem(t, db, mains.ID, "Sold Out", "5.00", false)
	hidden := createTestMenuItem(t, db, retired.ID, "Hidden", "5.00", true)

	item, err := service.GetItemDetail(ctx, burger.ID.String())
	require.NoError(t, err)
	assert.Equal(t, burger.ID, item.ID)
	assert.Equal(t, mains.ID, item.Category.ID)

	_, err = service.GetItemDetail(ctx, soldOut.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetItemDetail(ctx, hidden.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}
