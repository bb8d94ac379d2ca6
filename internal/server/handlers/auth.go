package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hussein34535/waledapi/internal/services"
	"github.com/hussein34535/waledapi/internal/store"
)

const tokenTTL = 12 * time.Hour

// Login checks the submitted credentials against the seeded admin account
// and hands back a session token, both as JSON and as a cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	admin, err := h.Store.FindAdmin(in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}
		return fail(c, err)
	}
	if !admin.CheckPassword(in.Password) || !admin.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	token, err := services.GenerateAdminToken(admin.ID, tokenTTL)
	if err != nil {
		return fail(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "admin_token",
		Value:    token,
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.JSON(fiber.Map{"token": token})
}
