package http

import (
	"shipping-admin/internal/admin/usecase"
	"shipping-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler exposes the aggregated dashboard view.
type DashboardHandler struct {
	dashboard *usecase.Dashboard
	log       logger.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(dashboard *usecase.Dashboard, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		log:       log.WithComponent("dashboard-handler"),
	}
}

// RegisterRoutes mounts the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/dashboard")
	group.Get("/stats", h.Stats)
	group.Get("/activity", h.Activity)
}

// Stats returns the aggregated counts and groupings.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Stats(c.UserContext()))
}

// Activity returns the recent-activity feed, newest first.
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	return c.JSON(h.dashboard.RecentActivity(c.UserContext(), limit))
}
