package routes

import "github.com/gofiber/fiber/v2"

var Version = "dev"

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "opsconsole",
		"version": Version,
	})
}
