package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hussein34535/waledapi/internal/server/handlers"
	"github.com/hussein34535/waledapi/internal/server/middleware"
	"github.com/hussein34535/waledapi/internal/store"
)

func RegisterRoutes(app *fiber.App, h *handlers.Handlers, st *store.Store) {
	// Auth
	app.Post("/login", h.Login)

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "time": time.Now()})
	})

	// Everything below requires an admin token
	admin := app.Group("/", middleware.AuthRequired(st))

	// VPS accounts
	admin.Post("/accounts", h.AccountCreate)
	admin.Get("/accounts", h.AccountList)
	admin.Get("/accounts/events", h.AccountsEvents)
	admin.Put("/accounts/:id", h.AccountUpdate)
	admin.Delete("/accounts/:id", h.AccountDelete)

	// SNI records
	admin.Post("/sni", h.SNICreate)
	admin.Get("/sni", h.SNIList)
	admin.Get("/sni/events", h.SNIEvents)
	admin.Put("/sni", h.SNIUpdate)
	admin.Delete("/sni", h.SNIDelete)

	// Notifications
	admin.Post("/notify", h.NotifySend)
}
