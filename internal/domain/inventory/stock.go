package inventory

import (
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Apply aplica un movimiento sobre una cantidad (servicio de dominio).
// IN suma, OUT y ADJUST restan, INVENTORY fija el valor absoluto descartando lo acumulado.
func Apply(current decimal.Decimal, m *entity.Movement) decimal.Decimal {
	switch m.Type {
	case entity.MovementTypeIN:
		return current.Add(m.Quantity)
	case entity.MovementTypeOUT, entity.MovementTypeADJUST:
		return current.Sub(m.Quantity)
	case entity.MovementTypeINVENTORY:
		return m.Quantity
	}
	return current
}

// DeriveStock recorre el registro en orden cronológico y devuelve el stock del SKU.
// No hay caché: se recalcula completo en cada consulta.
func DeriveStock(movements []*entity.Movement, sku string) decimal.Decimal {
	qty := decimal.Zero
	for _, m := range movements {
		if m.SKU != sku {
			continue
		}
		qty = Apply(qty, m)
	}
	return qty
}

// DeriveAll calcula el stock de todos los SKU en una sola pasada.
func DeriveAll(movements []*entity.Movement) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, m := range movements {
		out[m.SKU] = Apply(out[m.SKU], m)
	}
	return out
}

var half = decimal.NewFromFloat(0.5)

// Round1 redondea a un decimal (vista de almacén). Los medios van hacia +∞: -0.15 da -0.1.
func Round1(d decimal.Decimal) decimal.Decimal {
	return d.Shift(1).Add(half).Floor().Shift(-1)
}

// Decreases indica si el tipo de movimiento resta stock y por tanto debe validarse contra negativos.
func Decreases(movementType string) bool {
	return movementType == entity.MovementTypeOUT || movementType == entity.MovementTypeADJUST
}
