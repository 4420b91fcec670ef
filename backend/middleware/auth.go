package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"quizmaster/backend/models"
	"quizmaster/backend/utils"
)

const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// TokenDecoder turns a raw bearer token into claims.
type TokenDecoder interface {
	DecodeToken(token string) (*utils.Claims, error)
}

// Identity is the authenticated caller as stored by AuthMiddleware.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

func AuthMiddleware(decoder TokenDecoder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := utils.ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, utils.ErrTokenMissing) {
				return fiber.NewError(fiber.StatusUnauthorized, "Token is missing")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header")
		}

		claims, err := decoder.DecodeToken(token)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "Token has expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole must be mounted after AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}
		if identity.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}

func AdminMiddleware() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}

// CurrentUser reads the identity stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (Identity, bool) {
	userID, ok := c.Locals(LocalUserID).(uint)
	if !ok || userID == 0 {
		return Identity{}, false
	}
	email, _ := c.Locals(LocalEmail).(string)
	role, _ := c.Locals(LocalRole).(string)
	return Identity{UserID: userID, Email: email, Role: role}, true
}
