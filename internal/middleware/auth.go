package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/safetravel/safetravel/internal/auth"
	"github.com/safetravel/safetravel/internal/user"
)

const (
	// UserEmailKey is the request-local key holding the verified subject email.
	UserEmailKey = "user_email"
	// UserKey is the request-local key holding the resolved user record.
	UserKey = "user"
)

// BearerAuth validates the bearer token on each protected request and resolves
// the caller before any protected logic runs. A verified token whose subject no
// longer maps to an account yields 404 rather than a success body.
func BearerAuth(tokens *auth.Tokens, users user.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		email, err := tokens.Subject(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		account, err := users.FindByEmail(c.UserContext(), email)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return err
		}

		c.Locals(UserEmailKey, email)
		c.Locals(UserKey, account)
		return c.Next()
	}
}
