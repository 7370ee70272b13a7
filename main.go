package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"motoshop-api/config"
	"motoshop-api/database"
	"motoshop-api/jobs"
	"motoshop-api/middleware"
	"motoshop-api/routes"
	"motoshop-api/services"
)

func main() {
	// Load configuration and logging
	cfg := config.Load()
	config.SetupLogger()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		logrus.WithError(err).Warn("Failed to seed database")
	}

	// Email service (verification codes + invoice notifications)
	emailService := services.NewEmailService(cfg)

	// Object storage for repair photos; the API runs without it
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Photo storage unavailable, continuing without it")
		storageService = nil
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PaginationDefaults())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService, storageService)

	// Background reconciliation of completed-but-unbilled repairs and low stock
	reconciliation := jobs.NewReconciliationJob(db, 30*time.Minute)
	reconciliation.Start()
	defer reconciliation.Stop()

	// Start server
	logrus.WithField("port", cfg.Port).Info("Starting MotoShop API server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
