package purchasing

import (
	"context"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
)

// OrderLineForPDF línea de orden enriquecida con los datos del artículo para el PDF.
type OrderLineForPDF struct {
	SKU             string
	Name            string
	PackSize        int
	QtyOrderedConf  int
	QtyReceivedConf int
	QtyOrderedBt    int
}

// OrderPDFGenerator genera la hoja de pedido en PDF.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, lines []OrderLineForPDF) ([]byte, error)
}

// SupplierNotifier avisa al proveedor de que una orden fue enviada (adjunta el PDF).
type SupplierNotifier interface {
	NotifyOrderSent(ctx context.Context, order *entity.Order, pdf []byte) error
}
