package dto

import "time"

// OrderLineCreate línea al crear una orden.
type OrderLineCreate struct {
	SKU            string `json:"sku" validate:"required,min=1" jsonschema:"required"`
	QtyOrderedConf int    `json:"qtyOrderedConf" validate:"gt=0" jsonschema:"required,minimum=1"`
}

// CreateOrderRequest body para POST /orders.
type CreateOrderRequest struct {
	Supplier string            `json:"supplier" validate:"required,oneof=DORECA ALPORI VARI" jsonschema:"required,enum=DORECA,enum=ALPORI,enum=VARI"`
	Notes    *string           `json:"notes,omitempty"`
	Lines    []OrderLineCreate `json:"lines" validate:"required,min=1,dive" jsonschema:"required,minItems=1"`
}

// OrderLineUpdate línea al reemplazar las líneas de una orden.
type OrderLineUpdate struct {
	SKU             string `json:"sku" validate:"required,min=1" jsonschema:"required"`
	QtyOrderedConf  int    `json:"qtyOrderedConf" validate:"gt=0" jsonschema:"required,minimum=1"`
	QtyReceivedConf int    `json:"qtyReceivedConf" validate:"min=0"`
}

// UpdateOrderRequest body para PATCH /orders/:id.
type UpdateOrderRequest struct {
	Supplier *string            `json:"supplier,omitempty" validate:"omitnil,oneof=DORECA ALPORI VARI" jsonschema:"enum=DORECA,enum=ALPORI,enum=VARI"`
	Status   *string            `json:"status,omitempty" validate:"omitnil,oneof=DRAFT SENT PARTIAL RECEIVED" jsonschema:"enum=DRAFT,enum=SENT,enum=PARTIAL,enum=RECEIVED"`
	Notes    *string            `json:"notes,omitempty"`
	Lines    *[]OrderLineUpdate `json:"lines,omitempty" validate:"omitnil,min=1,dive"`
}

// ReceiveLine confezioni recibidas ahora para un SKU.
type ReceiveLine struct {
	SKU                string `json:"sku" validate:"required,min=1" jsonschema:"required"`
	QtyReceivedNowConf int    `json:"qtyReceivedNowConf" validate:"gt=0" jsonschema:"required,minimum=1"`
}

// ReceiveOrderRequest body para POST /orders/:id/receive.
type ReceiveOrderRequest struct {
	Note  *string       `json:"note,omitempty"`
	Lines []ReceiveLine `json:"lines" validate:"required,min=1,dive" jsonschema:"required,minItems=1"`
}

// OrderLineResponse línea en respuestas.
type OrderLineResponse struct {
	SKU             string `json:"sku"`
	QtyOrderedConf  int    `json:"qtyOrderedConf"`
	QtyReceivedConf int    `json:"qtyReceivedConf"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	OrderID    string              `json:"orderId"`
	Supplier   string              `json:"supplier"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	SentAt     *time.Time          `json:"sentAt"`
	ReceivedAt *time.Time          `json:"receivedAt"`
	Notes      *string             `json:"notes"`
	Lines      []OrderLineResponse `json:"lines"`
}

// OrderFilter filtros de GET /orders (todos opcionales).
type OrderFilter struct {
	Q        string
	Supplier string
	Status   string
	DateFrom *time.Time // inclusive, inicio del día
	DateTo   *time.Time // inclusive, fin del día
}

// OrderKPIs contadores de GET /orders/kpis.
type OrderKPIs struct {
	Total    int `json:"total"`
	Drafts   int `json:"drafts"`
	Received int `json:"received"`
	Pending  int `json:"pending"`
	Lines    int `json:"lines"`
}
