package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /movements.
// La cantidad llega como quantity o como opsUnit+opsQty (PACK se multiplica por packSize), nunca ambas.
type CreateMovementRequest struct {
	SKU      string           `json:"sku" validate:"required,min=1" jsonschema:"required"`
	Type     string           `json:"type" validate:"required,oneof=IN OUT ADJUST INVENTORY" jsonschema:"required,enum=IN,enum=OUT,enum=ADJUST,enum=INVENTORY"`
	Quantity *decimal.Decimal `json:"quantity,omitempty" validate:"omitnil,min=0"`
	Reason   *string          `json:"reason,omitempty" validate:"omitnil,oneof=VENDITA RESO_CLIENTE SCARTO FURTO RETTIFICA INVENTARIO" jsonschema:"enum=VENDITA,enum=RESO_CLIENTE,enum=SCARTO,enum=FURTO,enum=RETTIFICA,enum=INVENTARIO"`
	Note     *string          `json:"note,omitempty"`
	OpsUnit  *string          `json:"opsUnit,omitempty" validate:"omitnil,oneof=PZ PACK" jsonschema:"enum=PZ,enum=PACK"`
	OpsQty   *decimal.Decimal `json:"opsQty,omitempty" validate:"omitnil,min=0"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Quantity decimal.Decimal `json:"quantity"`
	Type     string          `json:"type"`
	Reason   string          `json:"reason,omitempty"`
	Note     string          `json:"note,omitempty"`
	Date     time.Time       `json:"date"`
}

// WarehouseRow fila de la vista de almacén (stock en BT, redondeado a un decimal).
type WarehouseRow struct {
	ItemID     string          `json:"itemId"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	StockBt    decimal.Decimal `json:"stockBt"`
	MinStockBt decimal.Decimal `json:"minStockBt"`
	UnderMin   bool            `json:"underMin"`
}

// WarehouseViewResponse cuerpo de GET /stock-v2.
type WarehouseViewResponse struct {
	Rows []WarehouseRow `json:"rows"`
}

// CICEvent payload del webhook del TPV externo.
type CICEvent struct {
	EventID string         `json:"eventId" validate:"required"`
	Type    string         `json:"type" validate:"required"`
	Lines   []CICEventLine `json:"lines" validate:"dive"`
}

// CICEventLine línea vendida en el TPV.
type CICEventLine struct {
	SKU      string          `json:"sku" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"gt=0"`
}
