package handler

import (
	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settings service.SettingsService
}

func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetBanner returns {"banner": null} when no banner row exists; a missing
// banner is not an error.
func (h *SettingsHandler) GetBanner(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"banner": h.settings.GetBanner()})
}

func (h *SettingsHandler) SetBanner(c *fiber.Ctx) error {
	var input model.BannerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.settings.SetBanner(&input); err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Banner updated"})
}
