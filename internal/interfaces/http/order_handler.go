package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/application/purchasing"
	"github.com/jhoicas/magazzino-api/internal/domain"
)

// OrderHandler órdenes de compra a proveedor.
type OrderHandler struct {
	uc *purchasing.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *purchasing.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func orderFilterFromQuery(c *fiber.Ctx) (dto.OrderFilter, error) {
	f := dto.OrderFilter{
		Q:        strings.TrimSpace(c.Query("q")),
		Supplier: strings.ToUpper(strings.TrimSpace(c.Query("supplier"))),
		Status:   strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}
	var err error
	if f.DateFrom, err = parseDateParam(c.Query("dateFrom"), false); err != nil {
		return f, domain.Invalid("dateFrom", "fecha inválida (YYYY-MM-DD)")
	}
	if f.DateTo, err = parseDateParam(c.Query("dateTo"), true); err != nil {
		return f, domain.Invalid("dateTo", "fecha inválida (YYYY-MM-DD)")
	}
	return f, nil
}

// List godoc
// @Summary      Listar órdenes
// @Description  Más recientes primero. status/supplier = ALL equivale a sin filtro.
// @Tags         orders
// @Produce      json
// @Param        q         query     string  false  "búsqueda libre (id, proveedor, estado, SKU)"
// @Param        supplier  query     string  false  "DORECA|ALPORI|VARI|ALL"
// @Param        status    query     string  false  "DRAFT|SENT|PARTIAL|RECEIVED|ALL"
// @Param        dateFrom  query     string  false  "YYYY-MM-DD"
// @Param        dateTo    query     string  false  "YYYY-MM-DD"
// @Success      200       {array}   dto.OrderResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	f, err := orderFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// KPIs godoc
// @Summary      Contadores de órdenes
// @Description  Mismos filtros que GET /orders.
// @Tags         orders
// @Produce      json
// @Success      200  {object}  dto.OrderKPIs
// @Router       /orders/kpis [get]
func (h *OrderHandler) KPIs(c *fiber.Ctx) error {
	f, err := orderFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	k, err := h.uc.KPIs(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(k)
}

// Get godoc
// @Summary      Obtener orden
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "id de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

// Create godoc
// @Summary      Crear orden (DRAFT)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOrderRequest  true  "orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	o, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// Update godoc
// @Summary      Modificar orden
// @Description  El estado se recalcula desde las líneas. El primer paso a SENT notifica al proveedor.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "id de la orden"
// @Param        body  body      dto.UpdateOrderRequest  true  "campos a modificar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /orders/{id} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	o, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

// Receive godoc
// @Summary      Recepción (parcial) de mercancía
// @Description  Cada línea genera un movimiento IN en BT. Todo o nada.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "id de la orden"
// @Param        body  body      dto.ReceiveOrderRequest  true  "confezioni recibidas"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveOrderRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	o, err := h.uc.Receive(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

// PDF godoc
// @Summary      Hoja de pedido en PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "id de la orden"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	b, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(b)
}
