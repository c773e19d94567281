package inventory_test

import (
	"testing"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
)

func TestDeriveOrderStatus(t *testing.T) {
	cases := []struct {
		name  string
		lines []entity.OrderLine
		base  string
		want  string
	}{
		{"sin recepción en borrador", []entity.OrderLine{{SKU: "A", QtyOrderedConf: 2}}, entity.OrderStatusDraft, entity.OrderStatusDraft},
		{"sin recepción enviada", []entity.OrderLine{{SKU: "A", QtyOrderedConf: 2}}, entity.OrderStatusSent, entity.OrderStatusSent},
		{"parcial", []entity.OrderLine{{SKU: "A", QtyOrderedConf: 2, QtyReceivedConf: 1}, {SKU: "B", QtyOrderedConf: 1}}, entity.OrderStatusSent, entity.OrderStatusPartial},
		{"completa", []entity.OrderLine{{SKU: "A", QtyOrderedConf: 2, QtyReceivedConf: 2}, {SKU: "B", QtyOrderedConf: 1, QtyReceivedConf: 1}}, entity.OrderStatusDraft, entity.OrderStatusReceived},
		{"base desconocida", nil, "", entity.OrderStatusDraft},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.DeriveOrderStatus(tc.lines, tc.base))
		})
	}
}

func TestConfToBt(t *testing.T) {
	six := 6
	assert.Equal(t, 24, inventory.ConfToBt(&entity.Item{PackSize: &six}, 4))
	assert.Equal(t, 4, inventory.ConfToBt(&entity.Item{}, 4), "sin packSize vale 1")
}

func TestOrderLine_Remaining(t *testing.T) {
	assert.Equal(t, 3, entity.OrderLine{QtyOrderedConf: 5, QtyReceivedConf: 2}.Remaining())
	assert.Equal(t, 0, entity.OrderLine{QtyOrderedConf: 5, QtyReceivedConf: 7}.Remaining())
}
