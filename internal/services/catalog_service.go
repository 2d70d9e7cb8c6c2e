package services

import (
	"context"
	"errors"
	"fmt"

	"restaurant-order-backend/internal/models"
	"restaurant-order-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService serves the public, read-only menu browsing surface. Only
// active categories and available items are ever visible here; the admin
// service sees everything.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
}

func NewCatalogService(categoryRepo repositories.CategoryRepository, menuItemRepo repositories.MenuItemRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
	}
}

func (s *CatalogService) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetActive(ctx)
}

func (s *CatalogService) ListCategoryItems(ctx context.Context, categoryID string) ([]models.MenuItem, error) {
	id, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category ID", ErrInvalidInput)
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category not found or not active", ErrNotFound)
		}
		return nil, err
	}
	if !category.IsActive {
		return nil, fmt.Errorf("%w: category not found or not active", ErrNotFound)
	}

	return s.menuItemRepo.GetAvailableByCategory(ctx, id)
}

func (s *CatalogService) ListAvailableItems(ctx context.Context, categoryID, search string) ([]models.MenuItem, error) {
	var categoryFilter *uuid.UUID
	if categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category ID", ErrInvalidInput)
		}
		categoryFilter = &id
	}

	return s.menuItemRepo.GetAvailable(ctx, categoryFilter, search)
}

func (s *CatalogService) GetItemDetail(ctx context.Context, itemID string) (*models.MenuItem, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid menu item ID", ErrInvalidInput)
	}

	item, err := s.menuItemRepo.GetAvailableByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item not found or not available", ErrNotFound)
		}
		return nil, err
	}

	return item, nil
}
