package entity

import "time"

// Estados de una orden de compra.
const (
	OrderStatusDraft    = "DRAFT"
	OrderStatusSent     = "SENT"
	OrderStatusPartial  = "PARTIAL"
	OrderStatusReceived = "RECEIVED"
)

// OrderStatuses lista cerrada de estados.
var OrderStatuses = []string{OrderStatusDraft, OrderStatusSent, OrderStatusPartial, OrderStatusReceived}

const OrderIDPrefix = "ord_"

// OrderLine línea de orden. Cantidades en confezioni (unidades de embalaje).
type OrderLine struct {
	SKU             string
	QtyOrderedConf  int
	QtyReceivedConf int
}

// Remaining confezioni pendientes de recibir (nunca negativo).
func (l OrderLine) Remaining() int {
	if r := l.QtyOrderedConf - l.QtyReceivedConf; r > 0 {
		return r
	}
	return 0
}

// Complete indica si la línea está totalmente recibida.
func (l OrderLine) Complete() bool {
	return l.QtyReceivedConf >= l.QtyOrderedConf
}

// Order orden de compra a proveedor.
type Order struct {
	OrderID    string
	Supplier   string
	Status     string
	CreatedAt  time.Time
	SentAt     *time.Time
	ReceivedAt *time.Time
	Notes      *string
	Lines      []OrderLine
}

// Clone copia profunda de la orden.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.SentAt != nil {
		t := *o.SentAt
		c.SentAt = &t
	}
	if o.ReceivedAt != nil {
		t := *o.ReceivedAt
		c.ReceivedAt = &t
	}
	if o.Notes != nil {
		n := *o.Notes
		c.Notes = &n
	}
	c.Lines = append([]OrderLine(nil), o.Lines...)
	return &c
}

// Line devuelve la línea del SKU indicado (índice -1 si no existe).
func (o *Order) Line(sku string) (int, *OrderLine) {
	for i := range o.Lines {
		if o.Lines[i].SKU == sku {
			return i, &o.Lines[i]
		}
	}
	return -1, nil
}
