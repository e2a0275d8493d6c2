package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pinbox-kr/pinbox-backend/config"
	"github.com/pinbox-kr/pinbox-backend/internal/app/controller"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/internal/app/service"
	"github.com/pinbox-kr/pinbox-backend/internal/db"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
	"github.com/pinbox-kr/pinbox-backend/internal/router"
	"github.com/pinbox-kr/pinbox-backend/internal/scheduler"
	"github.com/pinbox-kr/pinbox-backend/internal/storage"
	"github.com/pinbox-kr/pinbox-backend/internal/websocket"
	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
	"github.com/pinbox-kr/pinbox-backend/pkg/redis"
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

	logger.Info("Starting PINBOX Backend Server", map[string]interface{}{
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

	// Seed database (admin account)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis. 캐시/토큰 블랙리스트 용도라 실패해도 서버는 뜬다.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, running without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Notification hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	optionRepo := repository.NewOptionRepository(db.GetDB())
	combRepo := repository.NewCombinationRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	walletRepo := repository.NewWalletRepository(db.GetDB())
	codeRepo := repository.NewDeliveryCodeRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo)
	catalogService := service.NewCatalogService(productRepo, optionRepo, combRepo, cfg.Catalog.CacheTTL)
	optionService := service.NewOptionService(optionRepo, combRepo, productRepo, catalogService)
	cartService := service.NewCartService(cartRepo, catalogService)
	orderService := service.NewOrderService(orderRepo, cartRepo, db.GetDB(), hub)
	walletService := service.NewWalletService(
		walletRepo,
		userRepo,
		db.GetDB(),
		cfg.Wallet.MinTopUpAmount,
		cfg.Wallet.MaxTopUpAmount,
		hub,
	)
	codeService := service.NewCodeService(codeRepo, orderRepo)

	// S3 storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// 미처리 충전 요청 만료 스케줄러
	topUpScheduler := scheduler.NewTopUpScheduler(walletService, cfg.Wallet.TopUpExpiry)
	if err := topUpScheduler.Start(); err != nil {
		logger.Error("Failed to start top-up scheduler", err)
	}
	defer topUpScheduler.Stop()

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.AccessTokenExpiry)
	productController := controller.NewProductController(productService)
	catalogController := controller.NewCatalogController(catalogService)
	optionController := controller.NewOptionController(optionService, cfg.Catalog.CombinationLimit)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, codeService)
	walletController := controller.NewWalletController(walletService)
	codeController := controller.NewCodeController(codeService)
	uploadController := controller.NewUploadController(s3Storage)
	notificationController := controller.NewNotificationController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		catalogController,
		optionController,
		cartController,
		orderController,
		walletController,
		codeController,
		uploadController,
		notificationController,
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
