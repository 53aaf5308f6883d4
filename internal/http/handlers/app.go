package handlers

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"stockroom/internal/config"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/web"
)

const apiBase = "/api/v1"

// Views loads the page templates from dir, or from the embedded copy when
// dir is empty.
func Views(dir string, reload bool) (*html.Engine, error) {
	var engine *html.Engine
	if dir != "" {
		engine = html.New(dir, ".html")
	} else {
		sub, err := fs.Sub(web.Templates, "templates")
		if err != nil {
			return nil, fmt.Errorf("embedded templates: %w", err)
		}
		engine = html.NewFileSystem(http.FS(sub), ".html")
	}
	engine.Reload(reload)
	return engine, nil
}

// NewApp builds the full application: middleware, JSON API, product pages,
// health and metrics.
func NewApp(cfg config.Config, store *repos.Store) (*fiber.App, error) {
	engine, err := Views(cfg.TemplateDir, cfg.TemplateReload)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: ErrorHandler,
		BodyLimit:    cfg.BodyLimit,
	})

	// ---------- Middlewares ----------
	app.Use(fiberrecover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{Output: applog.Writer()}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/healthz" || p == "/metrics"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return fiber.ErrTooManyRequests
		},
	}))

	m := NewMetrics()
	deps := NewDeps(store, m)

	// ---------- API ----------
	api := app.Group(apiBase)
	deps.ProductAPI.Register(api, "/products")
	deps.CategoryAPI.Register(api, "/categories")
	api.Get("/categories/:id/products", deps.CategoryHandler.Products)

	// ---------- Pages ----------
	pages := app.Group(productsPath, csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	ph := deps.ProductHandler
	pages.Get("/", ph.Index)
	pages.Get("/details/:id?", ph.Details)
	pages.Get("/create", ph.CreateForm)
	pages.Post("/create", ph.Create)
	pages.Get("/edit/:id", ph.Edit)
	pages.Post("/edit/:id", ph.EditPost)
	pages.Get("/delete/:id", ph.Delete)
	pages.Post("/delete/:id", ph.DeleteConfirmed)

	// ---------- Health, metrics & 404 ----------
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect(productsPath, fiber.StatusFound) })
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if db := store.DB(); db != nil {
			if err := db.PingContext(c.UserContext()); err != nil {
				applog.Error(c, "health.db.fail", err, nil)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
			}
		}
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", m.Handler())
	app.Use(func(c *fiber.Ctx) error {
		if isAPI(c) {
			return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: errorKind(fiber.StatusNotFound)})
		}
		return notFoundPage(c, "Page not found")
	})

	return app, nil
}
