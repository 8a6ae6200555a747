package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
	apperrors "github.com/codigo-hd/helpdesk-service/pkg/util"
)

// RequireUserType ensures the principal has one of the allowed account types.
// With no arguments it only requires authentication.
func RequireUserType(allowed ...domain.UserType) fiber.Handler {
	allowedSet := make(map[domain.UserType]struct{}, len(allowed))
	for _, t := range allowed {
		allowedSet[t] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.UserType]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
