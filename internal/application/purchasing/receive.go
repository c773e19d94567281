package purchasing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Receive registra una recepción parcial o total de la orden.
//
// Todas las líneas se validan antes de aplicar ninguna: si una falla no cambia nada.
// Por cada línea aceptada se incrementa qtyReceivedConf y se genera un movimiento IN de
// (confezioni × packSize) con reason RICEZIONE_ORDINE. Orden y movimientos se guardan en la misma unidad de trabajo.
func (uc *OrderUseCase) Receive(ctx context.Context, id string, in dto.ReceiveOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("lines", "indicar al menos una línea a recibir")
	}
	note := ""
	if in.Note != nil {
		note = strings.TrimSpace(*in.Note)
	}

	var updated *entity.Order
	err := uc.tx.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository, orders repository.OrderRepository) error {
		current, err := orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NewRuleError(domain.ErrNotFound, fmt.Sprintf("orden %s no encontrada", id), nil)
		}
		if current.Status == entity.OrderStatusReceived {
			return domain.NewRuleError(domain.ErrOrderReceived,
				fmt.Sprintf("la orden %s ya está recibida", id), map[string]any{"orderId": id})
		}
		order := current.Clone()

		type accepted struct {
			idx  int
			item *entity.Item
			qty  int
		}
		plan := make([]accepted, 0, len(in.Lines))
		seen := make(map[string]bool, len(in.Lines))

		// 1. Validar todo.
		for _, rl := range in.Lines {
			sku := inventory.NormalizeSKU(rl.SKU)
			if sku == "" {
				return domain.Invalid("lines.sku", "sku es requerido en cada línea")
			}
			if rl.QtyReceivedNowConf <= 0 {
				return domain.NewRuleError(domain.ErrInvalidInput,
					fmt.Sprintf("%s: qtyReceivedNowConf debe ser mayor que cero", sku),
					map[string]any{"field": "lines.qtyReceivedNowConf", "sku": sku})
			}
			if seen[sku] {
				return domain.NewRuleError(domain.ErrInvalidInput,
					fmt.Sprintf("SKU %s repetido en la recepción", sku), map[string]any{"sku": sku})
			}
			seen[sku] = true

			idx, line := order.Line(sku)
			if line == nil {
				return domain.NewRuleError(domain.ErrInvalidInput,
					fmt.Sprintf("SKU %s no pertenece a la orden", sku), map[string]any{"sku": sku})
			}
			item, err := items.GetBySKU(ctx, sku)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.NewRuleError(domain.ErrInvalidInput,
					fmt.Sprintf("SKU %s no existe en el registro", sku), map[string]any{"sku": sku})
			}
			if !item.Active {
				return domain.NewRuleError(domain.ErrInactiveItem,
					fmt.Sprintf("SKU %s está desactivado", sku), map[string]any{"sku": sku})
			}
			if line.QtyReceivedConf+rl.QtyReceivedNowConf > line.QtyOrderedConf {
				return domain.NewRuleError(domain.ErrOverReceipt,
					fmt.Sprintf("%s: recibido %d + %d supera lo ordenado %d",
						sku, line.QtyReceivedConf, rl.QtyReceivedNowConf, line.QtyOrderedConf),
					map[string]any{
						"sku":          sku,
						"orderedConf":  line.QtyOrderedConf,
						"receivedConf": line.QtyReceivedConf,
						"tryingConf":   line.QtyReceivedConf + rl.QtyReceivedNowConf,
					})
			}
			plan = append(plan, accepted{idx: idx, item: item, qty: rl.QtyReceivedNowConf})
		}

		// 2. Aplicar.
		now := uc.now()
		movNote := "ORD:" + order.OrderID
		if note != "" {
			movNote += " | " + note
		}
		created := make([]*entity.Movement, 0, len(plan))
		for _, p := range plan {
			order.Lines[p.idx].QtyReceivedConf += p.qty
			created = append(created, &entity.Movement{
				ID:       uuid.New().String(),
				SKU:      p.item.SKU,
				Quantity: decimal.NewFromInt(int64(inventory.ConfToBt(p.item, p.qty))),
				Type:     entity.MovementTypeIN,
				Reason:   entity.ReasonRicezioneOrdine,
				Note:     movNote,
				Date:     now,
			})
		}

		order.Status = inventory.DeriveOrderStatus(order.Lines, baseStatus(current))
		if order.Status == entity.OrderStatusReceived {
			order.ReceivedAt = &now
		}
		if err := orders.Update(ctx, order); err != nil {
			return err
		}
		if err := movs.Append(ctx, created...); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(updated), nil
}
