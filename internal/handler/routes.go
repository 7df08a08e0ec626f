package handler

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"payrouter/internal/domain"
	"payrouter/internal/registry"
	"payrouter/internal/service"
)

type RouteHandler struct {
	router   *service.Router
	registry *registry.Registry
}

func NewRouteHandler(router *service.Router, reg *registry.Registry) *RouteHandler {
	return &RouteHandler{router: router, registry: reg}
}

func (h *RouteHandler) Register(app *fiber.App) {
	app.Post("/route", h.Route)
	app.Get("/health", h.Health)

	admin := app.Group("/admin")
	admin.Get("/providers", h.ListProviders)
	admin.Post("/providers/:id/status/:state", h.SetStatus)
	admin.Post("/reload", h.Reload)
	admin.Get("/decisions-summary", h.DecisionsSummary)
	admin.Post("/purge", h.Purge)
}

func (h *RouteHandler) Route(c *fiber.Ctx) error {
	var tx domain.Tx
	if err := sonic.Unmarshal(c.Body(), &tx); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := tx.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	decision := h.router.Decide(c.Context(), tx)
	if !decision.Routed() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": domain.ErrNoProvider.Error()})
	}
	return c.JSON(decision)
}

func (h *RouteHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":              true,
		"providers":       h.registry.Len(),
		"cachedDecisions": h.router.CachedDecisions(),
	})
}

func (h *RouteHandler) ListProviders(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"providers": h.registry.List()})
}

func (h *RouteHandler) SetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	state := c.Params("state")
	if err := h.registry.SetStatus(id, state); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid provider or state"})
	}
	return c.JSON(fiber.Map{"ok": true, "provider": id, "status": state})
}

func (h *RouteHandler) Reload(c *fiber.Ctx) error {
	if err := h.registry.Reload(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	providers := h.registry.List()
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}
	return c.JSON(fiber.Map{"ok": true, "providers": ids})
}

func (h *RouteHandler) DecisionsSummary(c *fiber.Ctx) error {
	from, to := parseWindow(c.Query("from"), c.Query("to"))
	summary, err := h.router.Summary(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read summary"})
	}
	return c.JSON(summary)
}

func (h *RouteHandler) Purge(c *fiber.Ctx) error {
	if err := h.router.Purge(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to purge"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseWindow(fromStr, toStr string) (time.Time, time.Time) {
	from := time.Unix(0, 0).UTC()
	if t, err := time.Parse(time.RFC3339Nano, fromStr); err == nil {
		from = t
	}
	to := time.Now().UTC()
	if t, err := time.Parse(time.RFC3339Nano, toStr); err == nil {
		to = t
	}
	return from, to
}
