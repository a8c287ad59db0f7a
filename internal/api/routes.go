package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/briefly/briefly-backend/internal/api/handlers"
	"github.com/briefly/briefly-backend/internal/api/middleware"
	"github.com/briefly/briefly-backend/internal/services"
)

// SetupRoutes configures all API routes. The create limiter is built
// once in main so every request shares the same counters.
func SetupRoutes(app *fiber.App, svc *services.Services, createLimiter middleware.RateLimiter) {
	// Summary management
	app.Post("/summaries", middleware.RateLimit(createLimiter), handlers.CreateSummary(svc))
	app.Get("/summaries", handlers.GetSummaries(svc))
	app.Get("/summaries/:id", handlers.GetSummary(svc))
	app.Delete("/summaries/:id", handlers.DeleteSummary(svc))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "briefly-backend",
		})
	})
}
