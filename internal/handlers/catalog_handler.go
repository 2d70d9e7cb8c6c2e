package handlers

import (
	"net/http"

	"restaurant-order-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the public menu browsing endpoints.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// @Summary List categories
// @Description List active menu categories
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListActiveCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// @Summary List category items
// @Description List available menu items of an active category
// @Tags catalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {array} models.MenuItem
// @Failure 404 {object} map[string]string
// @Router /api/categories/{id}/items [get]
func (h *CatalogHandler) ListCategoryItems(c *gin.Context) {
	items, err := h.catalogService.ListCategoryItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary List menu items
// @Description List available menu items, optionally filtered by category and name search
// @Tags catalog
// @Produce json
// @Param category_id query string false "Category ID filter"
// @Param search query string false "Case-insensitive name substring"
// @Success 200 {array} models.MenuItem
// @Failure 400 {object} map[string]string
// @Router /api/menu-items [get]
func (h *CatalogHandler) ListMenuItems(c *gin.Context) {
	items, err := h.catalogService.ListAvailableItems(c.Request.Context(), c.Query("category_id"), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Get menu item
// @Description Get an available menu item by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.MenuItem
// @Failure 404 {object} map[string]string
// @Router /api/menu-items/{id} [get]
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	item, err := h.catalogService.GetItemDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", h.ListCategories)
	router.GET("/categories/:id/items", h.ListCategoryItems)
	router.GET("/menu-items", h.ListMenuItems)
	router.GET("/menu-items/:id", h.GetMenuItem)
}
