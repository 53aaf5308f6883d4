package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"stockroom/internal/controllers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/validate"
)

// APIHandler exposes one resource's API controller over JSON.
// Resource names the entity in logs and metrics; Base is the collection URL.
type APIHandler[T any, P repos.Record[T]] struct {
	Resource string
	Base     string
	API      *controllers.API[T, P]
	Metrics  *Metrics
}

func NewAPIHandler[T any, P repos.Record[T]](resource, base string, repo repos.Repository[T], m *Metrics) *APIHandler[T, P] {
	return &APIHandler[T, P]{
		Resource: resource,
		Base:     base,
		API:      controllers.NewAPI[T, P](repo),
		Metrics:  m,
	}
}

// Register mounts the collection and item routes at path.
func (h *APIHandler[T, P]) Register(r fiber.Router, path string) {
	r.Get(path, h.List)
	r.Get(path+"/:id", h.Get)
	r.Post(path, h.Create)
	r.Put(path+"/:id", h.Update)
	r.Delete(path+"/:id", h.Delete)
}

func (h *APIHandler[T, P]) List(c *fiber.Ctx) error {
	res, err := h.API.List(c.UserContext())
	if err != nil {
		return err
	}
	return h.respond(c, "list", res)
}

func (h *APIHandler[T, P]) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": h.Resource + ".id"})
		return h.respond(c, "get", controllers.APIResult{Kind: controllers.NotFound})
	}
	res, err := h.API.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.respond(c, "get", res)
}

func (h *APIHandler[T, P]) Create(c *fiber.Ctx) error {
	entity := new(T)
	if err := c.BodyParser(entity); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": h.Resource + ".body"})
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	res, err := h.API.Create(c.UserContext(), entity)
	if err != nil {
		applog.Error(c, h.Resource+".create.fail", err, nil)
		return err
	}
	return h.respond(c, "create", res)
}

func (h *APIHandler[T, P]) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": h.Resource + ".id"})
		return h.respond(c, "update", controllers.APIResult{Kind: controllers.BadRequest})
	}
	entity := new(T)
	if err := c.BodyParser(entity); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": h.Resource + ".body"})
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	res, err := h.API.Update(c.UserContext(), id, entity)
	if err != nil {
		applog.Error(c, h.Resource+".update.fail", err, map[string]any{"id": id})
		return err
	}
	return h.respond(c, "update", res)
}

func (h *APIHandler[T, P]) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": h.Resource + ".id"})
		return h.respond(c, "delete", controllers.APIResult{Kind: controllers.NotFound})
	}
	res, err := h.API.Delete(c.UserContext(), id)
	if err != nil {
		applog.Error(c, h.Resource+".delete.fail", err, map[string]any{"id": id})
		return err
	}
	return h.respond(c, "delete", res)
}

// Location resolves a Created result's Get action and id to the item URL.
func (h *APIHandler[T, P]) Location(res controllers.APIResult) string {
	return h.Base + "/" + strconv.FormatInt(res.ID, 10)
}

func (h *APIHandler[T, P]) respond(c *fiber.Ctx, action string, res controllers.APIResult) error {
	h.Metrics.observe("api", h.Resource, action, res.Kind.String())

	switch res.Kind {
	case controllers.Ok:
		return c.Status(fiber.StatusOK).JSON(res.Body)
	case controllers.Created:
		c.Location(h.Location(res))
		applog.Audit(c, h.Resource+".create", map[string]any{"id": res.ID})
		return c.Status(fiber.StatusCreated).JSON(res.Body)
	case controllers.NoContent:
		applog.Audit(c, h.Resource+"."+action, map[string]any{"id": res.ID})
		return c.SendStatus(fiber.StatusNoContent)
	case controllers.BadRequest:
		applog.Security(c, h.Resource+"."+action+".reject", map[string]any{"id": res.ID})
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Error: errorKind(fiber.StatusBadRequest)})
	case controllers.NotFound:
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: errorKind(fiber.StatusNotFound)})
	}
	return fiber.ErrInternalServerError
}
