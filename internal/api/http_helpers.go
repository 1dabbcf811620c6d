package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fema/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	return services.ParseDate(raw, location)
}

func currentUsername(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals(contextUsernameKey).(string)
	return username, ok && username != ""
}
