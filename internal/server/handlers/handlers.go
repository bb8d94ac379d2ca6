package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/hussein34535/waledapi/internal/events"
	"github.com/hussein34535/waledapi/internal/services"
	"github.com/hussein34535/waledapi/internal/store"
	"github.com/hussein34535/waledapi/internal/validate"
)

// Handlers owns the injected collaborators every route needs. There is no
// package-level database handle; everything flows through here.
type Handlers struct {
	Store *store.Store
	FCM   *services.FCMClient
	Hub   *events.Hub
}

func New(st *store.Store, fcm *services.FCMClient, hub *events.Hub) *Handlers {
	return &Handlers{Store: st, FCM: fcm, Hub: hub}
}

// fail translates a store error into the HTTP boundary response.
func fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	logrus.WithError(err).Error("store operation failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

func validationFailed(c *fiber.Ctx, errs validate.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": errs,
	})
}
