package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/geekhaven/brew-backend/config"
	"github.com/geekhaven/brew-backend/internal/app/controller"
	"github.com/geekhaven/brew-backend/internal/app/repository"
	"github.com/geekhaven/brew-backend/internal/app/service"
	"github.com/geekhaven/brew-backend/internal/db"
	"github.com/geekhaven/brew-backend/internal/middleware"
	"github.com/geekhaven/brew-backend/internal/router"
	"github.com/geekhaven/brew-backend/internal/scheduler"
	"github.com/geekhaven/brew-backend/internal/storage"
	"github.com/geekhaven/brew-backend/pkg/logger"
	"github.com/geekhaven/brew-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting GeekHaven Brew Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize redis (token blacklist)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to connect to redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize S3 storage for product images
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	reservationRepo := repository.NewReservationRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, db.GetDB())
	reservationService := service.NewReservationService(reservationRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	reservationController := controller.NewReservationController(reservationService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start reservation sweeper
	reservationScheduler := scheduler.NewReservationScheduler(reservationService)
	if err := reservationScheduler.Start(); err != nil {
		logger.Fatal("Failed to start reservation scheduler", err)
	}
	defer reservationScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		orderController,
		reservationController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
