package utils

import "github.com/gofiber/fiber/v2"

// JSONError writes the {error, details} failure shape shared by all
// endpoints. details is omitted when empty.
func JSONError(c *fiber.Ctx, status int, msg, details string) error {
	body := fiber.Map{"error": msg}
	if details != "" {
		body["details"] = details
	}
	return c.Status(status).JSON(body)
}
