package http

import (
	"reflect"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/invopop/jsonschema"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/shopspring/decimal"
)

// requestSchemas cuerpos aceptados por la API, por nombre público.
var requestSchemas = map[string]any{
	"item-create":   dto.CreateItemRequest{},
	"item-update":   dto.UpdateItemRequest{},
	"movement":      dto.CreateMovementRequest{},
	"order-create":  dto.CreateOrderRequest{},
	"order-update":  dto.UpdateOrderRequest{},
	"order-receive": dto.ReceiveOrderRequest{},
	"cic-event":     dto.CICEvent{},
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func schemaFor(v any) *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == decimalType {
				return &jsonschema.Schema{Type: "number"}
			}
			return nil
		},
	}
	return r.Reflect(v)
}

// SchemaHandler publica el JSON Schema de cada cuerpo de petición.
type SchemaHandler struct{}

// List godoc
// @Summary      Nombres de esquemas disponibles
// @Tags         schemas
// @Produce      json
// @Success      200  {array}  string
// @Router       /schemas [get]
func (SchemaHandler) List(c *fiber.Ctx) error {
	names := make([]string, 0, len(requestSchemas))
	for n := range requestSchemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return c.JSON(names)
}

// Get godoc
// @Summary      JSON Schema de un cuerpo de petición
// @Tags         schemas
// @Produce      json
// @Param        name  path      string  true  "item-create|item-update|movement|order-create|order-update|order-receive|cic-event"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /schemas/{name} [get]
func (SchemaHandler) Get(c *fiber.Ctx) error {
	v, ok := requestSchemas[c.Params("name")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "esquema desconocido", Code: "NOT_FOUND"})
	}
	return c.JSON(schemaFor(v))
}
