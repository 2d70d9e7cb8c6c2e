package handlers

import (
	"net/http"

	"restaurant-order-backend/internal/middleware"
	"restaurant-order-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the privileged management surface. Every route except
// the public restaurant info read requires the staff or admin role.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// @Summary Create category
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateCategoryRequest true "Category creation request"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.adminService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// @Summary List all categories
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/admin/categories [get]
func (h *AdminHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.adminService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// @Summary Update category
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body services.UpdateCategoryRequest true "Category updates"
// @Success 200 {object} models.Category
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/categories/{id} [put]
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.adminService.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// @Summary Delete category
// @Description Delete a category with no menu items
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.adminService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// @Summary Create menu item
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateMenuItemRequest true "Menu item creation request"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/menu-items [post]
func (h *AdminHandler) CreateMenuItem(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.adminService.CreateMenuItem(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// @Summary List all menu items
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.MenuItem
// @Router /api/admin/menu-items [get]
func (h *AdminHandler) GetAllMenuItems(c *gin.Context) {
	items, err := h.adminService.GetAllMenuItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Update menu item
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body services.UpdateMenuItemRequest true "Menu item updates"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/menu-items/{id} [put]
func (h *AdminHandler) UpdateMenuItem(c *gin.Context) {
	var req services.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.adminService.UpdateMenuItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// @Summary Delete menu item
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/menu-items/{id} [delete]
func (h *AdminHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.adminService.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

// @Summary List all orders
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Order
// @Router /api/admin/orders [get]
func (h *AdminHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.adminService.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// @Summary Get order detail
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} map[string]string
// @Router /api/admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c *gin.Context) {
	order, err := h.adminService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// @Summary Update order status
// @Description Advance an order along its lifecycle
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body services.UpdateOrderStatusRequest true "Status update request"
// @Success 200 {object} models.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.adminService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// @Summary List all users
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Router /api/admin/users [get]
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.adminService.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary Update user role
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body services.UpdateUserRoleRequest true "Role update request"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req services.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminService.UpdateUserRole(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Get restaurant info
// @Description Public restaurant profile, created with defaults on first read
// @Tags restaurant
// @Produce json
// @Success 200 {object} models.RestaurantInfo
// @Router /api/restaurant-info [get]
func (h *AdminHandler) GetRestaurantInfo(c *gin.Context) {
	info, err := h.adminService.GetRestaurantInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// @Summary Update restaurant info
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.UpdateRestaurantInfoRequest true "Restaurant info updates"
// @Success 200 {object} models.RestaurantInfo
// @Failure 400 {object} map[string]string
// @Router /api/admin/restaurant-info [put]
func (h *AdminHandler) UpdateRestaurantInfo(c *gin.Context) {
	var req services.UpdateRestaurantInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.adminService.UpdateRestaurantInfo(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/restaurant-info", h.GetRestaurantInfo)

	admin := router.Group("/admin", authMiddleware.AuthRequired(), authMiddleware.PrivilegedRequired())
	{
		admin.POST("/categories", h.CreateCategory)
		admin.GET("/categories", h.GetAllCategories)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)

		admin.POST("/menu-items", h.CreateMenuItem)
		admin.GET("/menu-items", h.GetAllMenuItems)
		admin.PUT("/menu-items/:id", h.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", h.DeleteMenuItem)

		admin.GET("/orders", h.GetAllOrders)
		admin.GET("/orders/:id", h.GetOrder)
		admin.PUT("/orders/:id/status", h.UpdateOrderStatus)

		admin.GET("/users", h.GetAllUsers)
		admin.PUT("/users/:id/role", h.UpdateUserRole)

		admin.PUT("/restaurant-info", h.UpdateRestaurantInfo)
	}
}
