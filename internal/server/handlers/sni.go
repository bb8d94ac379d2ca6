package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hussein34535/waledapi/internal/events"
	"github.com/hussein34535/waledapi/internal/models"
	"github.com/hussein34535/waledapi/internal/validate"
)

func (h *Handlers) SNICreate(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
		Host string `json:"host"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	rec, errs := validate.SNICreate(in.Name, in.Host)
	if errs != nil {
		return validationFailed(c, errs)
	}
	if err := h.Store.CreateSNI(rec); err != nil {
		return fail(c, err)
	}
	h.Hub.Publish(events.KindSNI)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "SNI added successfully"})
}

func (h *Handlers) SNIList(c *fiber.Ctx) error {
	records, err := h.Store.ListSNI()
	if err != nil {
		return fail(c, err)
	}
	if records == nil {
		records = []models.SNIRecord{}
	}
	return c.JSON(records)
}

func (h *Handlers) SNIUpdate(c *fiber.Ctx) error {
	var in struct {
		ID   string `json:"id"`
		Host string `json:"host"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	if errs := validate.SNIUpdate(in.ID, in.Host); errs != nil {
		return validationFailed(c, errs)
	}
	if err := h.Store.UpdateSNI(in.ID, in.Host); err != nil {
		return fail(c, err)
	}
	h.Hub.Publish(events.KindSNI)
	return c.JSON(fiber.Map{"message": "SNI updated successfully"})
}

// SNIDelete removes by the ?id= query; a missing record is not an error.
func (h *Handlers) SNIDelete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID is required"})
	}
	if err := h.Store.DeleteSNI(id); err != nil {
		return fail(c, err)
	}
	h.Hub.Publish(events.KindSNI)
	return c.JSON(fiber.Map{"message": "SNI deleted successfully"})
}
