package inventory

import "github.com/jhoicas/magazzino-api/internal/domain/entity"

// DeriveOrderStatus calcula el estado a partir de las líneas.
// RECEIVED si todas las líneas están completas, PARTIAL si hubo alguna recepción,
// si no el estado explícito (DRAFT o SENT) indicado en base.
func DeriveOrderStatus(lines []entity.OrderLine, base string) string {
	if len(lines) > 0 {
		all, received := true, false
		for _, l := range lines {
			if !l.Complete() {
				all = false
			}
			if l.QtyReceivedConf > 0 {
				received = true
			}
		}
		if all {
			return entity.OrderStatusReceived
		}
		if received {
			return entity.OrderStatusPartial
		}
	}
	if base == entity.OrderStatusSent {
		return entity.OrderStatusSent
	}
	return entity.OrderStatusDraft
}

// ConfToBt convierte confezioni a unidades base usando el packSize del artículo.
func ConfToBt(item *entity.Item, qtyConf int) int {
	return qtyConf * item.EffectivePackSize()
}
