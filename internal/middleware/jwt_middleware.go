package middleware

import (
	"errors"
	"strings"

	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Locals keys set by AuthRequired.
const (
	LocalClaims  = "claims"
	LocalSubject = "subject"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if strings.TrimSpace(authHeader) == "" {
			return unauthorized(c, services.AuthMissingCredential)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, services.AuthInvalid)
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("JWT validation failed")
			var authErr *services.AuthError
			if errors.As(err, &authErr) {
				return unauthorized(c, authErr.Reason)
			}
			return unauthorized(c, services.AuthInvalid)
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals(LocalClaims, claims)
		c.Locals(LocalSubject, claims["sub"])

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, reason string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Authentication failed",
		"error":   reason,
	})
}
