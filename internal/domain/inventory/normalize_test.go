package inventory_test

import (
	"strings"
	"testing"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeItem_ValoresSeguros(t *testing.T) {
	zero := 0
	blank := "  "
	it := inventory.NormalizeItem(&entity.Item{
		SKU:        "  gin01 ",
		Name:       " Gin ",
		CategoryID: "uncategorized",
		Supplier:   "desconocido",
		StockKind:  "OTRO",
		MinStockBt: decimal.NewFromInt(-3),
		Brand:      &blank,
		PackSize:   &zero,
	})

	assert.True(t, strings.HasPrefix(it.ItemID, entity.ItemIDPrefix))
	assert.Equal(t, "GIN01", it.SKU)
	assert.Equal(t, "Gin", it.Name)
	assert.Equal(t, entity.CategoryBevande, it.CategoryID)
	assert.Equal(t, entity.SupplierVari, it.Supplier)
	assert.Equal(t, entity.StockKindUnit, it.StockKind)
	assert.Equal(t, entity.BaseUnitCL, it.BaseUnit)
	assert.True(t, it.MinStockBt.IsZero())
	assert.Equal(t, entity.CurrencyEUR, it.CostCurrency)
	assert.Nil(t, it.Brand)
	assert.Nil(t, it.PackSize)
}

func TestNormalizeItem_ConservaValoresValidos(t *testing.T) {
	it := inventory.NormalizeItem(&entity.Item{ItemID: "itm_x", SKU: "A", CategoryID: entity.CategoryRhum, Supplier: "alpori"})
	assert.Equal(t, "itm_x", it.ItemID)
	assert.Equal(t, entity.CategoryRhum, it.CategoryID)
	assert.Equal(t, entity.SupplierAlpori, it.Supplier)
}

func TestValidateStockKind(t *testing.T) {
	seventy := decimal.NewFromInt(70)
	assert.Equal(t, "unitToCl", inventory.ValidateStockKind(&entity.Item{StockKind: entity.StockKindUnit}))
	assert.Equal(t, "", inventory.ValidateStockKind(&entity.Item{StockKind: entity.StockKindUnit, UnitToCl: &seventy}))
	assert.Equal(t, "containerSizeCl", inventory.ValidateStockKind(&entity.Item{StockKind: entity.StockKindVolumeContainer, UnitToCl: &seventy}))
}
