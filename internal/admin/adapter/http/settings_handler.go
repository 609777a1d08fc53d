package http

import (
	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/admin/usecase"
	"shipping-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler exposes the settings document.
type SettingsHandler struct {
	settings *usecase.SettingsService
	log      logger.Logger
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(settings *usecase.SettingsService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		log:      log.WithComponent("settings-handler"),
	}
}

// RegisterRoutes mounts the settings routes.
func (h *SettingsHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/settings")
	group.Get("/", h.Get)
	group.Put("/", h.Update)
	group.Post("/reset", h.Reset)
}

// Get returns the current settings document.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.settings.Get(c.UserContext()))
}

// Update replaces the settings document.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var settings model.Settings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	saved, err := h.settings.Update(c.UserContext(), settings)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(saved)
}

// Reset restores the default settings document.
func (h *SettingsHandler) Reset(c *fiber.Ctx) error {
	reset, err := h.settings.Reset(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reset)
}
