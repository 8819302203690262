package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"heshbonit/internal/api"
	"heshbonit/internal/api/handlers"
	"heshbonit/internal/repository"
	"heshbonit/internal/service"
	"heshbonit/pkg/auth"
	"heshbonit/pkg/config"
	"heshbonit/pkg/logger"
	"heshbonit/pkg/postgres"

	"go.uber.org/zap"
)

// @title Heshbonit API
// @version 1.0
// @description Expense-tracking backend with AI invoice extraction

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:4000
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting heshbonit service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	geminiService, err := service.NewGeminiService(ctx, &cfg.Gemini, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini service", zap.Error(err))
	}

	expenseService := service.NewExpenseService(expenseRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	invoiceHandler := handlers.NewInvoiceHandler(geminiService, expenseService, cfg.Upload.Dir, cfg.Upload.MaxFileSize, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, invoiceHandler, expenseHandler, jwtManager, cfg.Upload.MaxFileSize, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
