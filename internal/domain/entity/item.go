package entity

import (
	"github.com/shopspring/decimal"
)

// Categorías admitidas para un artículo.
const (
	CategoryBevande         = "bevande"
	CategoryVino            = "vino"
	CategoryBirra           = "birra"
	CategoryAmari           = "amari"
	CategoryDistillatiAltri = "distillati_altri"
	CategoryGin             = "gin"
	CategoryVodka           = "vodka"
	CategoryWhiskey         = "whiskey"
	CategoryRhum            = "rhum"
	CategoryTequila         = "tequila"
)

// Categories lista cerrada de categorías, en el orden mostrado por la UI.
var Categories = []string{
	CategoryBevande, CategoryVino, CategoryBirra, CategoryAmari, CategoryDistillatiAltri,
	CategoryGin, CategoryVodka, CategoryWhiskey, CategoryRhum, CategoryTequila,
}

// Proveedores.
const (
	SupplierDoreca = "DORECA"
	SupplierAlpori = "ALPORI"
	SupplierVari   = "VARI"
)

// Suppliers lista cerrada de proveedores.
var Suppliers = []string{SupplierDoreca, SupplierAlpori, SupplierVari}

// Tipos de stock: por unidad (botella) o por contenedor a volumen.
const (
	StockKindUnit            = "UNIT"
	StockKindVolumeContainer = "VOLUME_CONTAINER"
)

const (
	BaseUnitCL      = "CL"
	CurrencyEUR     = "EUR"
	ItemIDPrefix    = "itm_"
	DefaultPackSize = 1
)

// Item representa un artículo del registro (SKU). El stock nunca se guarda aquí:
// se deriva siempre del registro de movimientos.
type Item struct {
	ItemID          string
	SKU             string // clave natural, mayúsculas y sin espacios
	Name            string
	CategoryID      string
	Supplier        string
	Active          bool
	StockKind       string
	BaseUnit        string
	MinStockBt      decimal.Decimal
	UnitToCl        *decimal.Decimal // obligatorio para UNIT
	ContainerSizeCl *decimal.Decimal // obligatorio para VOLUME_CONTAINER
	ContainerLabel  *string
	ImageURL        *string
	LastCostCents   *int64
	CostCurrency    string
	Brand           *string
	PackSize        *int // multiplicador confezione -> BT
}

// EffectivePackSize devuelve el packSize utilizable para conversiones (mínimo 1).
func (i *Item) EffectivePackSize() int {
	if i == nil || i.PackSize == nil || *i.PackSize < 1 {
		return DefaultPackSize
	}
	return *i.PackSize
}

// Clone copia profunda (los punteros no se comparten).
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	if i.UnitToCl != nil {
		v := *i.UnitToCl
		c.UnitToCl = &v
	}
	if i.ContainerSizeCl != nil {
		v := *i.ContainerSizeCl
		c.ContainerSizeCl = &v
	}
	if i.ContainerLabel != nil {
		v := *i.ContainerLabel
		c.ContainerLabel = &v
	}
	if i.ImageURL != nil {
		v := *i.ImageURL
		c.ImageURL = &v
	}
	if i.LastCostCents != nil {
		v := *i.LastCostCents
		c.LastCostCents = &v
	}
	if i.Brand != nil {
		v := *i.Brand
		c.Brand = &v
	}
	if i.PackSize != nil {
		v := *i.PackSize
		c.PackSize = &v
	}
	return &c
}
