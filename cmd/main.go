package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipping-admin/internal/admin/config"
	"shipping-admin/internal/di"
	"shipping-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🚢 Shipping Admin - Starting Application...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application configuration loaded successfully")

	container := di.NewContainer(cfg, appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := container.InitializeStorage(ctx); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	if err := container.InitializeAuth(); err != nil {
		log.Fatalf("Failed to initialize auth module: %v", err)
	}
	appLogger.Info("Auth module initialized successfully")

	if err := container.InitializeAdmin(); err != nil {
		log.Fatalf("Failed to initialize admin module: %v", err)
	}
	appLogger.Info("Admin module initialized successfully")

	app := fiber.New(fiber.Config{
		AppName:      "Shipping Admin API v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			appLogger.Errorf("HTTP Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		},
	})

	authModule := container.GetAuthModule()
	adminModule := container.GetAdminModule()

	app.Use(recover.New())
	app.Use(authModule.Middleware.CORS())
	app.Use(authModule.Middleware.RequestID())

	app.Get("/health", func(c *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := container.HealthCheck(healthCtx); err != nil {
			appLogger.Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "UNHEALTHY",
				"error":  err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"message":   "Shipping Admin API is running",
			"timestamp": time.Now().UTC(),
			"backend":   cfg.StorageBackend,
		})
	})

	authModule.RegisterRoutes(app)
	appLogger.Info("Auth routes registered")

	adminModule.RegisterRoutes(app, authModule.Middleware)
	appLogger.Info("Admin routes and realtime endpoint registered")

	serverAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	appLogger.Infof("🌟 All modules initialized. Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			log.Fatalf("Server startup failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)
		fmt.Println("🛑 Shutting down server gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}

		appLogger.Info("HTTP server stopped")
	}

	fmt.Println("✅ Application stopped gracefully.")
}
