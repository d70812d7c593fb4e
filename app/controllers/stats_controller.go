package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/internal/pkg/statistics"
)

// HandleStats exposes the cached aggregate counters.
func HandleStats(c *fiber.Ctx) error {
	return c.JSON(statistics.GetStatistics())
}
