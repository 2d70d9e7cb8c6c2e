package main

import (
	"log"

	"restaurant-order-backend/configs"
	"restaurant-order-backend/internal/handlers"
	"restaurant-order-backend/internal/middleware"
	"restaurant-order-backend/internal/repositories"
	"restaurant-order-backend/internal/services"
	"restaurant-order-backend/pkg/auth"
	"restaurant-order-backend/pkg/cache"
	"restaurant-order-backend/pkg/database"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize database connection
	db, err := database.NewDatabase(config.Database.PostgresURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Migrate tables and invariant-backing indexes
	if err := database.Migrate(db.Postgres); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis cache (refresh token store)
	redisCache := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if redisCache == nil {
		log.Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(config.JWT.SecretKey, config.JWT.AccessExpiryHours, config.JWT.RefreshExpiryDays)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.Postgres)
	categoryRepo := repositories.NewCategoryRepository(db.Postgres)
	menuItemRepo := repositories.NewMenuItemRepository(db.Postgres)

	// Initialize services
	authService := services.NewAuthService(userRepo, jwtManager, redisCache)
	catalogService := services.NewCatalogService(categoryRepo, menuItemRepo)
	addressService := services.NewAddressService(db.Postgres)
	orderService := services.NewOrderService(db.Postgres)
	paymentService := services.NewPaymentService(db.Postgres, config.Payment.WebhookSecret)
	adminService := services.NewAdminService(db.Postgres)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	addressHandler := handlers.NewAddressHandler(addressService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "restaurant-order-backend",
		})
	})

	// Register routes
	authHandler.RegisterRoutes(api, authMiddleware)
	catalogHandler.RegisterRoutes(api)
	addressHandler.RegisterRoutes(api, authMiddleware)
	orderHandler.RegisterRoutes(api, authMiddleware)
	paymentHandler.RegisterRoutes(api, authMiddleware)
	adminHandler.RegisterRoutes(api, authMiddleware)

	log.Printf("Server starting on port %s", config.Server.Port)
	log.Fatal(router.Run(":" + config.Server.Port))
}
