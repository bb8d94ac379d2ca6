package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hussein34535/waledapi/internal/services"
	"github.com/hussein34535/waledapi/internal/store"
)

// AuthRequired checks JWT from Cookie("admin_token") or Authorization: Bearer
func AuthRequired(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("admin_token")
		if token == "" {
			authz := c.Get("Authorization")
			if strings.HasPrefix(authz, "Bearer ") {
				token = strings.TrimPrefix(authz, "Bearer ")
			}
		}
		if token == "" {
			return fiber.ErrUnauthorized
		}
		claims, err := services.ParseToken(token)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		admin, err := st.GetAdmin(claims.AdminID)
		if err != nil || !admin.IsActive {
			return fiber.ErrUnauthorized
		}
		c.Locals("admin", admin)
		return c.Next()
	}
}
