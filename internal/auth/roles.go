package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/abkoo/ticketdesk/pkg/util"
)

// RequireAdmin ensures the authenticated caller holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsAdmin() {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
