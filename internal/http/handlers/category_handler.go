package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// Products lists a category together with its products.
func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category.id"})
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: errorKind(fiber.StatusNotFound)})
	}
	cat, err := h.Catalog.CategoryWithProducts(c.UserContext(), id)
	if err != nil {
		return err
	}
	if cat == nil {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: errorKind(fiber.StatusNotFound)})
	}
	return c.JSON(cat)
}
