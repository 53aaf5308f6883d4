package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/controllers"
	"stockroom/internal/domain"
	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

const productsPath = "/products"

// ProductHandler serves the server-rendered product pages.
type ProductHandler struct {
	Pages   *controllers.View[domain.Product, *domain.Product]
	Catalog *services.CatalogService
	Metrics *Metrics
}

func (h *ProductHandler) Index(c *fiber.Ctx) error {
	res, err := h.Pages.Index(c.UserContext())
	if err != nil {
		return err
	}
	return h.present(c, "index", res)
}

// Details takes the id from the optional route segment or the ?id= query.
func (h *ProductHandler) Details(c *fiber.Ctx) error {
	raw := c.Params("id")
	if raw == "" {
		raw = c.Query("id")
	}
	id, ok := validate.OptionalID(raw)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product.id"})
		return notFoundPage(c, "This item is no longer available")
	}
	res, err := h.Pages.Details(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.present(c, "details", res)
}

func (h *ProductHandler) CreateForm(c *fiber.Ctx) error {
	return h.present(c, "create_form", h.Pages.CreateForm())
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	p := new(domain.Product)
	if err := c.BodyParser(p); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "product.form"})
		c.Status(fiber.StatusBadRequest)
		return h.form(c, controllers.ViewCreate, p, "Please check the highlighted values.")
	}
	res, err := h.Pages.Create(c.UserContext(), p)
	if err != nil {
		applog.Error(c, "product.create.fail", err, nil)
		return err
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID, "name": p.Name})
	return h.present(c, "create", res)
}

func (h *ProductHandler) Edit(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return notFoundPage(c, "This item is no longer available")
	}
	res, err := h.Pages.Edit(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.present(c, "edit_form", res)
}

func (h *ProductHandler) EditPost(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return notFoundPage(c, "This item is no longer available")
	}
	p := new(domain.Product)
	if err := c.BodyParser(p); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "product.form"})
		c.Status(fiber.StatusBadRequest)
		return h.form(c, controllers.ViewEdit, p, "Please check the highlighted values.")
	}
	res, err := h.Pages.EditPost(c.UserContext(), id, p)
	if err != nil {
		applog.Error(c, "product.update.fail", err, map[string]any{"id": id})
		return err
	}
	if res.Kind == controllers.Redirect {
		applog.Audit(c, "product.update", map[string]any{"id": id})
	} else {
		applog.Security(c, "product.update.mismatch", map[string]any{"id": id, "form_id": p.ID})
	}
	return h.present(c, "edit", res)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return notFoundPage(c, "This item is no longer available")
	}
	res, err := h.Pages.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.present(c, "delete_form", res)
}

func (h *ProductHandler) DeleteConfirmed(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return notFoundPage(c, "This item is no longer available")
	}
	res, err := h.Pages.DeleteConfirmed(c.UserContext(), id)
	if err != nil {
		applog.Error(c, "product.delete.fail", err, map[string]any{"id": id})
		return err
	}
	if res.Kind == controllers.Redirect {
		applog.Audit(c, "product.delete", map[string]any{"id": id})
	}
	return h.present(c, "delete", res)
}

func (h *ProductHandler) id(c *fiber.Ctx) (int64, bool) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product.id"})
	}
	return id, ok
}

// present turns a view outcome into a page, a redirect or the not-found page.
func (h *ProductHandler) present(c *fiber.Ctx, action string, res controllers.ViewResult) error {
	h.Metrics.observe("view", "product", action, res.Kind.String())

	switch res.Kind {
	case controllers.Redirect:
		return c.Redirect(actionPath(res.Action), fiber.StatusFound)
	case controllers.NotFoundPage:
		return notFoundPage(c, "This item is no longer available")
	}
	data := fiber.Map{"Model": res.Model}
	if err := h.withCategories(c, data); err != nil {
		return err
	}
	return render(c, "products/"+res.View, data)
}

func (h *ProductHandler) form(c *fiber.Ctx, view string, p *domain.Product, msg string) error {
	data := fiber.Map{"Model": p, "Err": msg}
	if err := h.withCategories(c, data); err != nil {
		return err
	}
	return render(c, "products/"+view, data)
}

// withCategories adds the dropdown options and an id -> name lookup.
func (h *ProductHandler) withCategories(c *fiber.Ctx, data fiber.Map) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(cats))
	for _, cat := range cats {
		names[cat.ID] = cat.Name
	}
	data["Categories"] = cats
	data["CategoryNames"] = names
	return nil
}

func actionPath(action string) string {
	switch action {
	case controllers.ActionIndex:
		return productsPath
	}
	return "/"
}
