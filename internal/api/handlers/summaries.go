package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/briefly/briefly-backend/internal/models"
	"github.com/briefly/briefly-backend/internal/repository"
	"github.com/briefly/briefly-backend/internal/services"
	"github.com/briefly/briefly-backend/internal/summarizer"
)

// CreateSummary handles POST /summaries
func CreateSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateSummaryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Original text is required",
			})
		}

		summary, err := svc.Summary.Create(c.Context(), req)
		if err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"error":   verr.Message,
				})
			}

			var genErr *summarizer.GenerationError
			if errors.As(err, &genErr) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"error":   genErr.Error(),
				})
			}

			logrus.WithError(err).Error("create summary failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Internal server error",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    summary,
		})
	}
}

// GetSummaries handles GET /summaries with optional search and style filters
func GetSummaries(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.ListFilter{
			Search: c.Query("search"),
		}

		// Unknown style values are ignored rather than rejected
		if style := models.SummaryStyle(c.Query("style")); style.IsValid() {
			filter.Style = style
		}

		summaries, err := svc.Summary.List(c.Context(), filter)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to fetch summaries",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    summaries,
		})
	}
}

// GetSummary handles GET /summaries/:id
func GetSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.Summary.Get(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, repository.ErrSummaryNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"success": false,
					"error":   "Summary not found",
				})
			}
			logrus.WithError(err).Error("fetch summary failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to fetch summary",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    summary,
		})
	}
}

// DeleteSummary handles DELETE /summaries/:id
func DeleteSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := svc.Summary.Delete(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, repository.ErrSummaryNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"success": false,
					"error":   "Summary not found",
				})
			}
			logrus.WithError(err).Error("delete summary failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to delete summary",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Summary deleted successfully",
		})
	}
}
