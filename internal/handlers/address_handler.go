package handlers

import (
	"net/http"

	"restaurant-order-backend/internal/middleware"
	"restaurant-order-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// @Summary Create address
// @Description Add a delivery address for the current user
// @Tags addresses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateAddressRequest true "Address creation request"
// @Success 201 {object} models.Address
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/addresses [post]
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.addressService.CreateAddress(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, address)
}

// @Summary List addresses
// @Description List the current user's addresses, default first
// @Tags addresses
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Address
// @Failure 401 {object} map[string]string
// @Router /api/addresses [get]
func (h *AddressHandler) GetAddresses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	addresses, err := h.addressService.GetAddresses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// @Summary Update address
// @Description Partially update an owned address
// @Tags addresses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param request body services.UpdateAddressRequest true "Address updates"
// @Success 200 {object} models.Address
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/addresses/{id} [put]
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.addressService.UpdateAddress(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

// @Summary Delete address
// @Description Delete an owned address
// @Tags addresses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.addressService.DeleteAddress(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}

// @Summary Set default address
// @Description Make an owned address the single default
// @Tags addresses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} models.Address
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/addresses/{id}/default [put]
func (h *AddressHandler) SetDefaultAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	address, err := h.addressService.SetDefaultAddress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	addresses := router.Group("/addresses", authMiddleware.AuthRequired())
	{
		addresses.POST("", h.CreateAddress)
		addresses.GET("", h.GetAddresses)
		addresses.PUT("/:id", h.UpdateAddress)
		addresses.DELETE("/:id", h.DeleteAddress)
		addresses.PUT("/:id/default", h.SetDefaultAddress)
	}
}
