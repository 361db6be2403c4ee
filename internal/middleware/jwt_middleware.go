package middleware

import (
	"errors"
	"strings"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
	"github.com/vitokorn/buy-me-a-gift/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const userLocalsKey = "user"

// AuthRequired is a Fiber middleware that resolves the Bearer access token to
// an active user and stores it in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication credentials were not provided.",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			var svcErr *services.Error
			if !errors.As(err, &svcErr) {
				logrus.WithError(err).Error("Failed to authenticate request")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}
			logrus.WithError(err).WithField("path", c.Path()).Debug("JWT validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": svcErr.Message,
			})
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil on routes
// without it.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}
