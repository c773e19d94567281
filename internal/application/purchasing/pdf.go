package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
)

// PDF genera la hoja de pedido. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *OrderUseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.NewRuleError(domain.ErrNotFound, fmt.Sprintf("orden %s no encontrada", id), nil)
	}
	doc, err := uc.render(ctx, order)
	if err != nil {
		return nil, "", err
	}
	return doc, order.OrderID + ".pdf", nil
}

func (uc *OrderUseCase) render(ctx context.Context, order *entity.Order) ([]byte, error) {
	lines := make([]OrderLineForPDF, 0, len(order.Lines))
	for _, l := range order.Lines {
		item, err := uc.itemRepo.GetBySKU(ctx, l.SKU)
		if err != nil {
			return nil, fmt.Errorf("pdf: obtener artículo %s: %w", l.SKU, err)
		}
		pl := OrderLineForPDF{
			SKU:             l.SKU,
			Name:            l.SKU,
			PackSize:        item.EffectivePackSize(),
			QtyOrderedConf:  l.QtyOrderedConf,
			QtyReceivedConf: l.QtyReceivedConf,
			QtyOrderedBt:    inventory.ConfToBt(item, l.QtyOrderedConf),
		}
		if item != nil {
			pl.Name = item.Name
		}
		lines = append(lines, pl)
	}
	return uc.pdf.GenerateOrderPDF(ctx, order, lines)
}

// notifySent envía la orden al proveedor la primera vez que pasa a SENT.
// Un fallo se registra en el log pero no revierte el cambio de estado.
func (uc *OrderUseCase) notifySent(ctx context.Context, order *entity.Order) {
	if uc.notifier == nil {
		return
	}
	var doc []byte
	if uc.pdf != nil {
		var err error
		if doc, err = uc.render(ctx, order); err != nil && uc.log != nil {
			uc.log.Warn().Err(err).Str("order_id", order.OrderID).Msg("no se pudo generar el PDF para el proveedor")
		}
	}
	if err := uc.notifier.NotifyOrderSent(ctx, order, doc); err != nil {
		if uc.log != nil {
			uc.log.Error().Err(err).Str("order_id", order.OrderID).Str("supplier", order.Supplier).
				Msg("no se pudo notificar la orden al proveedor")
		}
		return
	}
	if uc.log != nil {
		uc.log.Info().Str("order_id", order.OrderID).Str("supplier", order.Supplier).Msg("orden enviada al proveedor")
	}
}
