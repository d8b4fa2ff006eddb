package middleware

import (
	"strings"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the context key under which RequireAuth stores the account.
const UserKey = "user"

// RequireAuth validates the bearer token and attaches the account (sans
// password hash in any serialized form) to the request context.
func RequireAuth(userRepo repository.UserRepository, tokens *jwt.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")

		parts := strings.Split(authHeader, " ")
		if authHeader == "" || len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"message": "Not authorized, no token"})
		}

		userID, err := tokens.Validate(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "Not authorized, token failed"})
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "Not authorized, token failed"})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// RequireAdmin gates a route to admin accounts. It must run after RequireAuth;
// with no account in context it denies the request.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(UserKey).(*model.User)
		if !ok || !user.IsAdmin() {
			return c.Status(401).JSON(fiber.Map{"message": "Not authorized as an admin"})
		}
		return c.Next()
	}
}
