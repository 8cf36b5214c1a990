package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/services"
)

// LocalsEmailKey is where RequireAuth stores the verified email.
const LocalsEmailKey = "email"

// RequireAuth checks the bearer token and stores the bound email in the
// request locals. A 401 here is the client's cue to evict its stored token.
func RequireAuth(issuer services.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		email, err := issuer.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token",
			})
		}

		c.Locals(LocalsEmailKey, email)
		return c.Next()
	}
}
