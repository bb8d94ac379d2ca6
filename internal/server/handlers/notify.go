package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NotifySend broadcasts a title/body pair to every subscriber of the fixed
// push topic. Success returns the opaque message id FCM assigned.
func (h *Handlers) NotifySend(c *fiber.Ctx) error {
	var in struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	messageID, err := h.FCM.SendToTopic(c.Context(), in.Title, in.Body)
	if err != nil {
		logrus.WithError(err).Error("push broadcast failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}
	logrus.WithField("messageId", messageID).Info("push broadcast sent")
	return c.JSON(fiber.Map{"messageId": messageID})
}
