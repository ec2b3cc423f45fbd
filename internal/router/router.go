// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/purzasetu/sparehub-backend/internal/config"
	"github.com/purzasetu/sparehub-backend/internal/handlers"
	"github.com/purzasetu/sparehub-backend/internal/middleware"
	"github.com/purzasetu/sparehub-backend/internal/services"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	requestService := services.NewRequestService(db, services.CallerTargeting{}, cfg)
	partService := services.NewPartService(db)
	favoriteService := services.NewFavoriteService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	requestHandler := handlers.NewRequestHandler(requestService)
	partHandler := handlers.NewPartHandler(partService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	adminHandler := handlers.NewAdminHandler(db)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Part request lifecycle routes
		requests := v1.Group("/requests")
		requests.Use(middleware.AuthRequired())
		{
			requests.POST("", requestHandler.CreateRequest)
			requests.GET("/customer/:customerId", requestHandler.GetCustomerRequests)
			requests.GET("/market/:shopkeeperId", requestHandler.GetMarketRequests)
			requests.GET("/cleanup/expired", middleware.AdminRequired(), requestHandler.CleanupExpired)
			requests.GET("/:id", requestHandler.GetRequest)
			requests.POST("/:id/offer", requestHandler.SubmitOffer)
			requests.PUT("/:id/status", requestHandler.UpdateStatus)
			requests.DELETE("/:id", requestHandler.DeleteRequest)
		}

		// Spare part listing routes
		parts := v1.Group("/parts")
		{
			parts.GET("", middleware.OptionalAuth(), partHandler.GetParts)
			parts.GET("/categories", partHandler.GetCategories)
			parts.GET("/:id", middleware.OptionalAuth(), partHandler.GetPart)

			// Authenticated routes
			protected := parts.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", partHandler.CreatePart)
				protected.PUT("/:id", partHandler.UpdatePart)
				protected.DELETE("/:id", partHandler.DeletePart)
			}
		}

		// Favorite routes
		favorites := v1.Group("/favorites")
		favorites.Use(middleware.AuthRequired())
		{
			favorites.POST("/toggle", favoriteHandler.Toggle)
			favorites.GET("/:userId", favoriteHandler.List)
			favorites.DELETE("/:userId/:partId", favoriteHandler.Remove)
		}

		// Upload routes
		uploads := v1.Group("/uploads")
		uploads.Use(middleware.AuthRequired())
		{
			uploads.POST("/photo", middleware.UploadRateLimit(), uploadHandler.UploadPhoto)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", cfg.Upload.LocalDir)
	}

	return r
}
