package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hussein34535/waledapi/internal/events"
	"github.com/hussein34535/waledapi/internal/models"
	"github.com/hussein34535/waledapi/internal/validate"
)

func (h *Handlers) AccountCreate(c *fiber.Ctx) error {
	var in validate.AccountInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	acc, errs := validate.Account(in)
	if errs != nil {
		return validationFailed(c, errs)
	}
	if err := h.Store.CreateAccount(acc); err != nil {
		return fail(c, err)
	}
	h.Hub.Publish(events.KindAccounts)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": acc.ID})
}

// AccountList returns all accounts newest-first. The optional ?type= query
// narrows to one profile type, case-insensitively.
func (h *Handlers) AccountList(c *fiber.Ctx) error {
	accounts, err := h.Store.ListAccounts(c.Query("type"))
	if err != nil {
		return fail(c, err)
	}
	if accounts == nil {
		accounts = []models.VpsAccount{}
	}
	// the dashboard polls this; never let an intermediary cache it
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	c.Set("Pragma", "no-cache")
	return c.JSON(accounts)
}

func (h *Handlers) AccountUpdate(c *fiber.Ctx) error {
	var in validate.AccountPatchInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	patch, errs := validate.AccountPatch(in)
	if errs != nil {
		return validationFailed(c, errs)
	}
	acc, err := h.Store.UpdateAccount(c.Params("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	h.Hub.Publish(events.KindAccounts)
	return c.JSON(acc)
}

// AccountDelete is idempotent; deleting an absent id still returns 200.
func (h *Handlers) AccountDelete(c *fiber.Ctx) error {
	if err := h.Store.DeleteAccount(c.Params("id")); err != nil {
		return fail(c, err)
	}
	h.Hub.Publish(events.KindAccounts)
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}
