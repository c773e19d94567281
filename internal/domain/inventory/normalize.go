package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const legacyCategory = "uncategorized"

// NormalizeSKU recorta y pasa a mayúsculas. Se aplica en cada lectura y escritura.
func NormalizeSKU(sku string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(sku))
}

// IsCategory indica si la categoría pertenece a la lista cerrada.
func IsCategory(c string) bool { return contains(entity.Categories, c) }

// IsSupplier indica si el proveedor pertenece a la lista cerrada.
func IsSupplier(s string) bool { return contains(entity.Suppliers, s) }

// NormalizeItem lleva un artículo a su forma canónica. Los valores desconocidos
// de categoría y proveedor se sustituyen por valores seguros en lugar de rechazarse.
func NormalizeItem(it *entity.Item) *entity.Item {
	if it.ItemID == "" {
		it.ItemID = entity.ItemIDPrefix + uuid.New().String()
	}
	it.SKU = NormalizeSKU(it.SKU)
	it.Name = strings.TrimSpace(it.Name)

	if it.CategoryID == legacyCategory || !IsCategory(it.CategoryID) {
		it.CategoryID = entity.CategoryBevande
	}
	sup := strings.ToUpper(strings.TrimSpace(it.Supplier))
	if !IsSupplier(sup) {
		sup = entity.SupplierVari
	}
	it.Supplier = sup

	if it.StockKind != entity.StockKindUnit && it.StockKind != entity.StockKindVolumeContainer {
		it.StockKind = entity.StockKindUnit
	}
	it.BaseUnit = entity.BaseUnitCL
	if it.MinStockBt.LessThan(decimal.Zero) {
		it.MinStockBt = decimal.Zero
	}
	if it.CostCurrency == "" {
		it.CostCurrency = entity.CurrencyEUR
	}
	if it.Brand != nil && strings.TrimSpace(*it.Brand) == "" {
		it.Brand = nil
	}
	if it.PackSize != nil && *it.PackSize < 1 {
		it.PackSize = nil
	}
	return it
}

// ValidateStockKind exige el factor de conversión correspondiente al tipo de stock.
// Devuelve el nombre del campo que falta o "" si es válido.
func ValidateStockKind(it *entity.Item) string {
	switch it.StockKind {
	case entity.StockKindUnit:
		if it.UnitToCl == nil || !it.UnitToCl.IsPositive() {
			return "unitToCl"
		}
	case entity.StockKindVolumeContainer:
		if it.ContainerSizeCl == nil || !it.ContainerSizeCl.IsPositive() {
			return "containerSizeCl"
		}
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
