package http

import (
	"encoding/json"

	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/admin/usecase"
	"shipping-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// EntityHandler exposes one repository's CRUD surface over HTTP. One instance
// per collection, all sharing the same route shape.
type EntityHandler[T model.Entity] struct {
	repo    *usecase.Repository[T]
	factory func() T
	log     logger.Logger
}

// NewEntityHandler creates a handler for one collection. factory allocates an
// empty entity for request decoding.
func NewEntityHandler[T model.Entity](repo *usecase.Repository[T], factory func() T, log logger.Logger) *EntityHandler[T] {
	return &EntityHandler[T]{
		repo:    repo,
		factory: factory,
		log:     log.WithComponent(repo.Collection() + "-handler"),
	}
}

// RegisterRoutes mounts the CRUD routes under the collection path.
func (h *EntityHandler[T]) RegisterRoutes(router fiber.Router) {
	group := router.Group("/" + h.repo.Collection())
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id<int>", h.Get)
	group.Put("/:id<int>", h.Update)
	group.Delete("/:id<int>", h.Delete)
}

// List returns the whole collection.
func (h *EntityHandler[T]) List(c *fiber.Ctx) error {
	items := h.repo.List(c.UserContext())
	return c.JSON(items)
}

// Get returns one entity by id.
func (h *EntityHandler[T]) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	item, err := h.repo.Find(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Create validates and stores a new entity.
func (h *EntityHandler[T]) Create(c *fiber.Ctx) error {
	entity := h.factory()
	if err := json.Unmarshal(c.Body(), entity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.repo.Create(c.UserContext(), entity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update applies a shallow field patch to an existing entity.
func (h *EntityHandler[T]) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.repo.Update(c.UserContext(), id, fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// Delete removes an entity. The caller confirms with confirm=true; anything
// else declines the confirmation gate and nothing is deleted.
func (h *EntityHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	ctx := WithConfirmation(c.UserContext(), c.QueryBool("confirm"))
	if err := h.repo.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deleted successfully"})
}
