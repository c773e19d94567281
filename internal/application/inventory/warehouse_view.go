package inventory

import (
	"context"

	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// WarehouseViewUseCase arma la vista de almacén: artículos activos con el stock derivado del registro.
type WarehouseViewUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	cache    ViewCache
}

// NewWarehouseViewUseCase construye el caso de uso. cache puede ser nil.
func NewWarehouseViewUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, cache ViewCache) *WarehouseViewUseCase {
	if cache == nil {
		cache = NoopViewCache{}
	}
	return &WarehouseViewUseCase{itemRepo: itemRepo, movRepo: movRepo, cache: cache}
}

// Rows devuelve las filas de la vista. onlyUnderMin filtra las que están bajo el mínimo.
func (uc *WarehouseViewUseCase) Rows(ctx context.Context, onlyUnderMin bool) ([]dto.WarehouseRow, error) {
	rows, ok := uc.cache.GetRows(ctx)
	if !ok {
		var err error
		rows, err = uc.build(ctx)
		if err != nil {
			return nil, err
		}
		uc.cache.SetRows(ctx, rows)
	}
	if !onlyUnderMin {
		return rows, nil
	}
	out := make([]dto.WarehouseRow, 0, len(rows))
	for _, r := range rows {
		if r.UnderMin {
			out = append(out, r)
		}
	}
	return out, nil
}

func (uc *WarehouseViewUseCase) build(ctx context.Context) ([]dto.WarehouseRow, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	stock := inventory.DeriveAll(movs)

	rows := make([]dto.WarehouseRow, 0, len(items))
	for _, it := range items {
		if !it.Active {
			continue
		}
		bt := inventory.Round1(stock[it.SKU])
		rows = append(rows, dto.WarehouseRow{
			ItemID:     it.ItemID,
			SKU:        it.SKU,
			Name:       it.Name,
			StockBt:    bt,
			MinStockBt: it.MinStockBt,
			UnderMin:   it.MinStockBt.IsPositive() && bt.LessThan(it.MinStockBt),
		})
	}
	return rows, nil
}

// StockMap devuelve {sku: cantidad} sobre todo el registro (GET /stock).
func (uc *WarehouseViewUseCase) StockMap(ctx context.Context) (map[string]decimal.Decimal, error) {
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	return inventory.DeriveAll(movs), nil
}

// CurrentStock stock derivado de un SKU.
func (uc *WarehouseViewUseCase) CurrentStock(ctx context.Context, sku string) (decimal.Decimal, error) {
	sku = inventory.NormalizeSKU(sku)
	movs, err := uc.movRepo.ListBySKU(ctx, sku)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.DeriveStock(movs, sku), nil
}
