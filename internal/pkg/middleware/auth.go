package middleware

import (
	"github.com/gofiber/fiber/v2"

	icuser "github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

// RequireSessionAuth ensures a logged-in session and returns JSON 401 otherwise.
func RequireSessionAuth(c *fiber.Ctx) error {
	v := c.Locals(icuser.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}
