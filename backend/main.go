package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"quizmaster/backend/config"
	"quizmaster/backend/middleware"
	"quizmaster/backend/repository"
	"quizmaster/backend/routes"
	"quizmaster/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	colors := cfg.LogFormat != "json"
	logger := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat, EnableColors: colors})

	// Initialize database
	db, err := utils.InitDB(cfg, logger)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}

	if err := repository.Migrate(db); err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}
	if err := repository.SeedRoles(db); err != nil {
		logger.Fatalf("Error seeding roles: %v", err)
	}
	adminHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.Fatalf("Error hashing admin password: %v", err)
	}
	if err := repository.SeedAdmin(db, cfg.AdminEmail, cfg.AdminUsername, adminHash); err != nil {
		logger.Fatalf("Error seeding admin user: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Quiz Master",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: utils.ErrorHandler(logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// Middleware
	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggingMiddleware(logger, colors))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, logger)

	go func() {
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Printf("Server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Println("Server stopped")
}
