package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body para POST /items.
type CreateItemRequest struct {
	SKU             string           `json:"sku" validate:"required,min=1,max=64" jsonschema:"required"`
	Name            string           `json:"name" validate:"required,min=1,max=200" jsonschema:"required"`
	CategoryID      string           `json:"categoryId" validate:"required,oneof=bevande vino birra amari distillati_altri gin vodka whiskey rhum tequila" jsonschema:"required,enum=bevande,enum=vino,enum=birra,enum=amari,enum=distillati_altri,enum=gin,enum=vodka,enum=whiskey,enum=rhum,enum=tequila"`
	Supplier        *string          `json:"supplier,omitempty" validate:"omitnil,oneof=DORECA ALPORI VARI" jsonschema:"enum=DORECA,enum=ALPORI,enum=VARI,default=VARI"`
	Active          *bool            `json:"active,omitempty" jsonschema:"default=true"`
	StockKind       string           `json:"stockKind" validate:"required,oneof=UNIT VOLUME_CONTAINER" jsonschema:"required,enum=UNIT,enum=VOLUME_CONTAINER"`
	MinStockBt      *decimal.Decimal `json:"minStockBt,omitempty" validate:"omitnil,min=0"`
	UnitToCl        *decimal.Decimal `json:"unitToCl,omitempty" validate:"omitnil,gt=0"`
	ContainerSizeCl *decimal.Decimal `json:"containerSizeCl,omitempty" validate:"omitnil,gt=0"`
	ContainerLabel  *string          `json:"containerLabel,omitempty" validate:"omitnil,min=1"`
	Brand           *string          `json:"brand,omitempty"`
	PackSize        *int             `json:"packSize,omitempty" validate:"omitnil,min=1"`
	ImageURL        *string          `json:"imageUrl,omitempty" validate:"omitnil,url"`
	LastCostCents   *int64           `json:"lastCostCents,omitempty" validate:"omitnil,min=0"`
	CostCurrency    *string          `json:"costCurrency,omitempty" validate:"omitnil,eq=EUR" jsonschema:"enum=EUR"`
}

// UpdateItemRequest body para PATCH /items/:sku (actualización parcial; el SKU no cambia).
type UpdateItemRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitnil,min=1,max=200"`
	CategoryID      *string          `json:"categoryId,omitempty" validate:"omitnil,oneof=bevande vino birra amari distillati_altri gin vodka whiskey rhum tequila"`
	Supplier        *string          `json:"supplier,omitempty" validate:"omitnil,oneof=DORECA ALPORI VARI"`
	Active          *bool            `json:"active,omitempty"`
	StockKind       *string          `json:"stockKind,omitempty" validate:"omitnil,oneof=UNIT VOLUME_CONTAINER"`
	MinStockBt      *decimal.Decimal `json:"minStockBt,omitempty" validate:"omitnil,min=0"`
	UnitToCl        *decimal.Decimal `json:"unitToCl,omitempty" validate:"omitnil,gt=0"`
	ContainerSizeCl *decimal.Decimal `json:"containerSizeCl,omitempty" validate:"omitnil,gt=0"`
	ContainerLabel  *string          `json:"containerLabel,omitempty" validate:"omitnil,min=1"`
	Brand           *string          `json:"brand,omitempty"`
	PackSize        *int             `json:"packSize,omitempty" validate:"omitnil,min=1"`
	ImageURL        *string          `json:"imageUrl,omitempty" validate:"omitnil,url"`
	LastCostCents   *int64           `json:"lastCostCents,omitempty" validate:"omitnil,min=0"`
	CostCurrency    *string          `json:"costCurrency,omitempty" validate:"omitnil,eq=EUR"`
}

// ItemResponse salida de un artículo. Los opcionales ausentes se serializan como null.
type ItemResponse struct {
	ItemID          string           `json:"itemId"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	CategoryID      string           `json:"categoryId"`
	Supplier        string           `json:"supplier"`
	Active          bool             `json:"active"`
	StockKind       string           `json:"stockKind"`
	BaseUnit        string           `json:"baseUnit"`
	MinStockBt      decimal.Decimal  `json:"minStockBt"`
	UnitToCl        *decimal.Decimal `json:"unitToCl"`
	ContainerSizeCl *decimal.Decimal `json:"containerSizeCl"`
	ContainerLabel  *string          `json:"containerLabel"`
	ImageURL        *string          `json:"imageUrl"`
	LastCostCents   *int64           `json:"lastCostCents"`
	CostCurrency    string           `json:"costCurrency"`
	Brand           *string          `json:"brand"`
	PackSize        *int             `json:"packSize"`
}
