package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"eventboard/internal/token"
)

// Auth parses an optional bearer token and stores the caller identity
// in Locals. Requests without an Authorization header pass through as
// anonymous; RequireAuth/RequireAdmin decide per route whether that is
// acceptable.
func Auth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Next()
		}

		claims, err := tokens.Parse(strings.TrimSpace(auth[7:]))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("is_admin", claims.IsAdmin)
		c.Locals("is_blocked", claims.IsBlocked)
		return c.Next()
	}
}
