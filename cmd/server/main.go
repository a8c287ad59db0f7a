package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/briefly/briefly-backend/internal/api"
	"github.com/briefly/briefly-backend/internal/api/middleware"
	"github.com/briefly/briefly-backend/internal/config"
	"github.com/briefly/briefly-backend/internal/database"
	"github.com/briefly/briefly-backend/internal/repository/postgres"
	"github.com/briefly/briefly-backend/internal/services"
	"github.com/briefly/briefly-backend/internal/summarizer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	// Connect to database
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Briefly Backend",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: getOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	// Initialize repositories and services
	summaryRepo := postgres.NewSummaryRepository(db.DB)
	generator := summarizer.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	svc := services.NewServices(summaryRepo, generator)

	// One limiter instance for the process; 10 creates per 15 minutes
	// per client address
	createLimiter := middleware.NewFixedWindowLimiter(10, 15*time.Minute)

	api.SetupRoutes(app, svc, createLimiter)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.WithField("addr", addr).Info("briefly backend starting")
	if err := app.Listen(addr); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func getOrigins() string {
	origins := os.Getenv("BRIEFLY_CORS_ORIGINS")
	if origins == "" {
		return "http://localhost:3000"
	}
	return origins
}
