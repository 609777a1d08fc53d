package http

import (
	"fmt"
	"time"

	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/admin/usecase"
	"shipping-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// ExportHandler serves collection downloads.
type ExportHandler struct {
	exporter *usecase.Exporter
	log      logger.Logger
}

// NewExportHandler creates an export handler.
func NewExportHandler(exporter *usecase.Exporter, log logger.Logger) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
		log:      log.WithComponent("export-handler"),
	}
}

// RegisterRoutes mounts the export routes.
func (h *ExportHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/export")
	group.Get("/", h.ExportAll)
	group.Get("/:collection", h.ExportCollection)
}

// ExportAll downloads the full data bundle as JSON.
func (h *ExportHandler) ExportAll(c *fiber.Ctx) error {
	out, err := h.exporter.ExportAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	attach(c, fmt.Sprintf("dashboard_export_%s.json", time.Now().Format(model.DateLayout)), fiber.MIMEApplicationJSON)
	return c.Send(out)
}

// ExportCollection downloads one collection, as CSV by default or as JSON
// with format=json.
func (h *ExportHandler) ExportCollection(c *fiber.Ctx) error {
	collection := c.Params("collection")
	if !validExportCollection(collection) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown collection"})
	}

	stamp := time.Now().Format(model.DateLayout)

	if c.Query("format") == "json" {
		out, err := h.exporter.ExportJSON(c.UserContext(), collection)
		if err != nil {
			return respondError(c, err)
		}
		attach(c, fmt.Sprintf("%s_%s.json", collection, stamp), fiber.MIMEApplicationJSON)
		return c.Send(out)
	}

	out, err := h.exporter.ExportCSV(c.UserContext(), collection)
	if err != nil {
		return respondError(c, err)
	}
	attach(c, fmt.Sprintf("%s_%s.csv", collection, stamp), "text/csv")
	return c.Send(out)
}

func attach(c *fiber.Ctx, filename, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}

func validExportCollection(name string) bool {
	for _, known := range model.ListCollections() {
		if name == known {
			return true
		}
	}
	return name == model.CollectionSettings
}
