package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/xlsx"
)

// InventoryHandler movimientos de stock y vistas de almacén.
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	view      *inventory.WarehouseViewUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, view *inventory.WarehouseViewUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, view: view}
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Orden cronológico. from/to aceptan YYYY-MM-DD (inclusive) o RFC3339.
// @Tags         inventory
// @Produce      json
// @Param        sku   query     string  false  "SKU"
// @Param        type  query     string  false  "IN|OUT|ADJUST|INVENTORY"
// @Param        from  query     string  false  "desde"
// @Param        to    query     string  false  "hasta"
// @Success      200   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		SKU:  c.Query("sku"),
		Type: strings.ToUpper(strings.TrimSpace(c.Query("type"))),
	}
	var err error
	if filter.From, err = parseDateParam(c.Query("from"), false); err != nil {
		return badRequest(c, "from", "fecha inválida")
	}
	if filter.To, err = parseDateParam(c.Query("to"), true); err != nil {
		return badRequest(c, "to", "fecha inválida")
	}
	list, err := h.movements.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  quantity o bien opsUnit (PZ|PACK) + opsQty. reason obligatoria en OUT/ADJUST.
// @Description  OUT/ADJUST que dejarían el stock negativo se rechazan con currentStock/requested/resulting.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.movements.RegisterMovementFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Stock godoc
// @Summary      Stock por SKU (todo el registro)
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  map[string]number
// @Router       /stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	m, err := h.view.StockMap(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

// WarehouseView godoc
// @Summary      Vista de almacén
// @Description  Artículos activos con stock en BT redondeado a un decimal.
// @Tags         inventory
// @Produce      json
// @Param        underMin  query     bool  false  "solo bajo mínimo"
// @Success      200       {object}  dto.WarehouseViewResponse
// @Router       /stock-v2 [get]
func (h *InventoryHandler) WarehouseView(c *fiber.Ctx) error {
	rows, err := h.view.Rows(c.UserContext(), c.QueryBool("underMin", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.WarehouseViewResponse{Rows: rows})
}

// ExportWarehouseView godoc
// @Summary      Exportar vista de almacén (xlsx)
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        underMin  query  bool  false  "solo bajo mínimo"
// @Success      200
// @Router       /stock-v2/export [get]
func (h *InventoryHandler) ExportWarehouseView(c *fiber.Ctx) error {
	rows, err := h.view.Rows(c.UserContext(), c.QueryBool("underMin", false))
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="magazzino_`+now.Format("20060102")+`.xlsx"`)
	return xlsx.WriteStock(c.Response().BodyWriter(), rows, now)
}

// parseDateParam acepta YYYY-MM-DD o RFC3339. Con endOfDay, una fecha sin hora cubre todo el día.
func parseDateParam(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
