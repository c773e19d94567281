package http

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/application/purchasing"
	"github.com/jhoicas/magazzino-api/internal/application/usecase"
	"github.com/swaggo/swag"
)

// ServiceName nombre devuelto por /health.
const ServiceName = "gestionale-magazzino-api"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC           *usecase.ItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	WarehouseView    *inventory.WarehouseViewUseCase
	OrderUC          *purchasing.OrderUseCase
	BasicAuth        BasicAuthConfig
	WebhookSecret    string // vacío: /webhooks/cic no se monta
	WebDistPath      string // vacío: no se sirve la UI
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Salud y webhook quedan fuera del basic auth (ver publicPaths).
	app.Get("/health", Health)

	if deps.WebhookSecret != "" {
		webhook := NewWebhookHandler(deps.RegisterMovement, deps.WebhookSecret)
		app.Post("/webhooks/cic", webhook.CIC)
	}

	if deps.BasicAuth.Enabled() {
		app.Use(BasicAuthMiddleware(deps.BasicAuth))
	}

	app.Get("/openapi.json", OpenAPI)
	schemas := SchemaHandler{}
	app.Get("/schemas", schemas.List)
	app.Get("/schemas/:name", schemas.Get)

	// Items
	itemHandler := NewItemHandler(deps.ItemUC)
	app.Get("/items", itemHandler.List)
	app.Post("/items", itemHandler.Create)
	app.Patch("/items/:sku", itemHandler.Update)
	app.Post("/items/:sku/image", itemHandler.UploadImage)

	// Movimientos y stock
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.WarehouseView)
	app.Get("/movements", inventoryHandler.ListMovements)
	app.Post("/movements", inventoryHandler.RegisterMovement)
	app.Get("/stock", inventoryHandler.Stock)
	app.Get("/stock-v2", inventoryHandler.WarehouseView)
	app.Get("/stock-v2/export", inventoryHandler.ExportWarehouseView)

	// Órdenes (kpis antes de :id)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := app.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/kpis", orderHandler.KPIs)
	orders.Get("/:id", orderHandler.Get)
	orders.Patch("/:id", orderHandler.Update)
	orders.Post("/:id/receive", orderHandler.Receive)
	orders.Get("/:id/pdf", orderHandler.PDF)

	if deps.WebDistPath != "" {
		mountWebUI(app, deps.WebDistPath)
	}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		OK:      true,
		Service: ServiceName,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// OpenAPI devuelve el documento registrado por el paquete docs.
func OpenAPI(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "documentación no disponible", Code: "NOT_FOUND"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}

// mountWebUI sirve la UI compilada; rutas GET desconocidas caen en index.html.
func mountWebUI(app *fiber.App, dist string) {
	index := filepath.Join(dist, "index.html")
	if _, err := os.Stat(index); err != nil {
		return
	}
	app.Static("/", dist)
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "ruta no encontrada", Code: "NOT_FOUND"})
		}
		return c.SendFile(index)
	})
}
