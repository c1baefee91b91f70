package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/opsconsole/pkg/api/stats"
	"github.com/travigo/opsconsole/pkg/consumer"
)

func Stats(c *fiber.Ctx) error {
	recordsStats := stats.CurrentRecordsStats()
	if recordsStats == nil {
		return c.JSON(fiber.Map{})
	}

	return c.JSON(recordsStats)
}

func Health(c *fiber.Ctx) error {
	if err := consumer.CheckHealth(c.UserContext()); err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
