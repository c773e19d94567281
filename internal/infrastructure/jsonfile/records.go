package jsonfile

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// Formato en disco: arrays JSON en camelCase, compatibles con los archivos existentes.

type itemRecord struct {
	ItemID          string           `json:"itemId"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	CategoryID      string           `json:"categoryId"`
	Supplier        string           `json:"supplier"`
	Active          *bool            `json:"active"`
	StockKind       string           `json:"stockKind"`
	BaseUnit        string           `json:"baseUnit"`
	MinStockBt      *decimal.Decimal `json:"minStockBt"`
	UnitToCl        *decimal.Decimal `json:"unitToCl"`
	ContainerSizeCl *decimal.Decimal `json:"containerSizeCl"`
	ContainerLabel  *string          `json:"containerLabel"`
	ImageURL        *string          `json:"imageUrl"`
	LastCostCents   *int64           `json:"lastCostCents"`
	CostCurrency    string           `json:"costCurrency"`
	Brand           *string          `json:"brand"`
	PackSize        *int             `json:"packSize"`
}

func (r itemRecord) toEntity() *entity.Item {
	it := &entity.Item{
		ItemID:          r.ItemID,
		SKU:             r.SKU,
		Name:            r.Name,
		CategoryID:      r.CategoryID,
		Supplier:        r.Supplier,
		Active:          r.Active == nil || *r.Active,
		StockKind:       r.StockKind,
		BaseUnit:        r.BaseUnit,
		UnitToCl:        r.UnitToCl,
		ContainerSizeCl: r.ContainerSizeCl,
		ContainerLabel:  r.ContainerLabel,
		ImageURL:        r.ImageURL,
		LastCostCents:   r.LastCostCents,
		CostCurrency:    r.CostCurrency,
		Brand:           r.Brand,
		PackSize:        r.PackSize,
	}
	if r.MinStockBt != nil {
		it.MinStockBt = *r.MinStockBt
	}
	return inventory.NormalizeItem(it)
}

func itemToRecord(it *entity.Item) itemRecord {
	active := it.Active
	minStock := it.MinStockBt
	return itemRecord{
		ItemID:          it.ItemID,
		SKU:             it.SKU,
		Name:            it.Name,
		CategoryID:      it.CategoryID,
		Supplier:        it.Supplier,
		Active:          &active,
		StockKind:       it.StockKind,
		BaseUnit:        it.BaseUnit,
		MinStockBt:      &minStock,
		UnitToCl:        it.UnitToCl,
		ContainerSizeCl: it.ContainerSizeCl,
		ContainerLabel:  it.ContainerLabel,
		ImageURL:        it.ImageURL,
		LastCostCents:   it.LastCostCents,
		CostCurrency:    it.CostCurrency,
		Brand:           it.Brand,
		PackSize:        it.PackSize,
	}
}

type movementRecord struct {
	ID       string           `json:"id"`
	SKU      string           `json:"sku"`
	Quantity *decimal.Decimal `json:"quantity"`
	Qty      *decimal.Decimal `json:"qty,omitempty"` // nombre antiguo, solo lectura
	Type     string           `json:"type"`
	Reason   string           `json:"reason,omitempty"`
	Note     string           `json:"note,omitempty"`
	Date     time.Time        `json:"date"`
}

func (r movementRecord) toEntity() *entity.Movement {
	q := decimal.Zero
	switch {
	case r.Quantity != nil:
		q = *r.Quantity
	case r.Qty != nil:
		q = *r.Qty
	}
	return &entity.Movement{
		ID:       r.ID,
		SKU:      inventory.NormalizeSKU(r.SKU),
		Quantity: q,
		Type:     strings.ToUpper(strings.TrimSpace(r.Type)),
		Reason:   r.Reason,
		Note:     r.Note,
		Date:     r.Date,
	}
}

func movementToRecord(m *entity.Movement) movementRecord {
	q := m.Quantity
	return movementRecord{
		ID:       m.ID,
		SKU:      m.SKU,
		Quantity: &q,
		Type:     m.Type,
		Reason:   m.Reason,
		Note:     m.Note,
		Date:     m.Date,
	}
}

type orderLineRecord struct {
	SKU             string   `json:"sku"`
	QtyOrderedConf  *int     `json:"qtyOrderedConf,omitempty"`
	QtyReceivedConf *int     `json:"qtyReceivedConf,omitempty"`
	QtyOrderedPz    *float64 `json:"qtyOrderedPz,omitempty"`  // formato antiguo en piezas
	QtyReceivedPz   *float64 `json:"qtyReceivedPz,omitempty"` // formato antiguo en piezas
}

type orderRecord struct {
	OrderID    string            `json:"orderId"`
	Supplier   string            `json:"supplier"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	SentAt     *time.Time        `json:"sentAt"`
	ReceivedAt *time.Time        `json:"receivedAt"`
	Notes      *string           `json:"notes"`
	Lines      []orderLineRecord `json:"lines"`
}

// toEntity convierte la orden. Las líneas antiguas en piezas se pasan a confezioni con el
// packSize actual: ordenado redondea hacia arriba, recibido hacia abajo.
func (r orderRecord) toEntity(packSize func(sku string) int) *entity.Order {
	lines := make([]entity.OrderLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		sku := inventory.NormalizeSKU(l.SKU)
		ps := float64(packSize(sku))
		line := entity.OrderLine{SKU: sku}
		switch {
		case l.QtyOrderedConf != nil:
			line.QtyOrderedConf = *l.QtyOrderedConf
		case l.QtyOrderedPz != nil:
			line.QtyOrderedConf = int(math.Ceil(*l.QtyOrderedPz / ps))
		}
		switch {
		case l.QtyReceivedConf != nil:
			line.QtyReceivedConf = *l.QtyReceivedConf
		case l.QtyReceivedPz != nil:
			line.QtyReceivedConf = int(math.Floor(*l.QtyReceivedPz / ps))
		}
		lines = append(lines, line)
	}
	o := &entity.Order{
		OrderID:    strings.TrimSpace(r.OrderID),
		Supplier:   strings.ToUpper(strings.TrimSpace(r.Supplier)),
		Status:     strings.ToUpper(strings.TrimSpace(r.Status)),
		CreatedAt:  r.CreatedAt,
		SentAt:     r.SentAt,
		ReceivedAt: r.ReceivedAt,
		Notes:      r.Notes,
		Lines:      lines,
	}
	// Órdenes antiguas sin identificador, estado o fecha de creación.
	if o.OrderID == "" {
		o.OrderID = entity.OrderIDPrefix + uuid.New().String()
	}
	if o.Status == "" {
		o.Status = entity.OrderStatusDraft
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	return o
}

func orderToRecord(o *entity.Order) orderRecord {
	lines := make([]orderLineRecord, 0, len(o.Lines))
	for _, l := range o.Lines {
		ordered, received := l.QtyOrderedConf, l.QtyReceivedConf
		lines = append(lines, orderLineRecord{SKU: l.SKU, QtyOrderedConf: &ordered, QtyReceivedConf: &received})
	}
	return orderRecord{
		OrderID:    o.OrderID,
		Supplier:   o.Supplier,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		SentAt:     o.SentAt,
		ReceivedAt: o.ReceivedAt,
		Notes:      o.Notes,
		Lines:      lines,
	}
}
