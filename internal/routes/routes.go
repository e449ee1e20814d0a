// Package routes defines HTTP routes for the auth service.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelstream/auth-service/internal/config"
	"github.com/reelstream/auth-service/internal/handlers"
	"github.com/reelstream/auth-service/internal/metrics"
	"github.com/reelstream/auth-service/internal/middleware"
)

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, authHandler *handlers.AuthHandler, healthHandler *handlers.HealthHandler, m *metrics.Metrics, cfg *config.Config) {
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.CSRF(middleware.CSRFConfig{AllowedOrigins: cfg.AllowedOrigins}))
	router.Use(m.Middleware())

	// Health check
	router.GET("/health", healthHandler.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.GET("/me", authHandler.Me)
		auth.POST("/logout", authHandler.Logout)
	}
}
