// Package main is the entry point for the auth service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/reelstream/auth-service/internal/config"
	"github.com/reelstream/auth-service/internal/database"
	"github.com/reelstream/auth-service/internal/handlers"
	"github.com/reelstream/auth-service/internal/logger"
	"github.com/reelstream/auth-service/internal/metrics"
	"github.com/reelstream/auth-service/internal/repository"
	"github.com/reelstream/auth-service/internal/routes"
	"github.com/reelstream/auth-service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// The logger is configured from the config; fall back to stderr.
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	// Initialize database (runs migrations)
	db, err := database.Connect(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	// Initialize repository
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenLifetime)
	if err != nil {
		log.Fatal("failed to initialize token service", "error", err)
	}
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, hasher, tokens)

	// Initialize handlers
	m := metrics.New(prometheus.DefaultRegisterer)
	cookies := handlers.NewCookieHelper(handlers.DefaultCookieConfig(cfg.TokenLifetime))
	authHandler := handlers.NewAuthHandler(authService, cookies, m, log)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Setup routes
	routes.Setup(router, authHandler, healthHandler, m, cfg)

	// Start server
	log.Info("starting auth service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal("failed to start server", "error", err)
	}
}
