package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/safetravel/safetravel/internal/middleware"
	"github.com/safetravel/safetravel/internal/user"
)

// RegisterUserRoutes wires the current-user profile endpoint. The caller is
// already resolved by the bearer-auth gate.
func RegisterUserRoutes(r fiber.Router) {
	group := r.Group("/user")
	group.Get("/me", func(c *fiber.Ctx) error {
		account, ok := c.Locals(middleware.UserKey).(user.User)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"email":   account.Email,
			"name":    account.Name,
			"message": "This is a protected endpoint",
		})
	})
}
