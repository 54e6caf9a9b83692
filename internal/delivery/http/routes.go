package http

import (
	"github.com/balcaohq/backend/config"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// ERP authorization flow
	auth := router.Group("/auth")
	{
		auth.GET("/login", handler.InitiateLogin)
		auth.GET("/callback", handler.LoginCallback)
		auth.GET("/status", handler.TokenStatus)
		auth.POST("/logout", handler.Logout)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("/search", handler.SearchProduct)
			products.POST("/describe", handler.DescribeProduct)
		}
	}

	return router
}
