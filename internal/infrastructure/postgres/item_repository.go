package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del registro de artículos sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `item_id, sku, name, category_id, supplier, active, stock_kind, base_unit, min_stock_bt,
	unit_to_cl, container_size_cl, container_label, image_url, last_cost_cents, cost_currency, brand, pack_size`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ItemID, &it.SKU, &it.Name, &it.CategoryID, &it.Supplier, &it.Active, &it.StockKind, &it.BaseUnit,
		&it.MinStockBt, &it.UnitToCl, &it.ContainerSizeCl, &it.ContainerLabel, &it.ImageURL,
		&it.LastCostCents, &it.CostCurrency, &it.Brand, &it.PackSize,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// List devuelve los artículos en orden de alta.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetBySKU obtiene un artículo; (nil, nil) si no existe.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Create inserta un artículo. SKU repetido -> domain.ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		it.ItemID, it.SKU, it.Name, it.CategoryID, it.Supplier, it.Active, it.StockKind, it.BaseUnit,
		it.MinStockBt, it.UnitToCl, it.ContainerSizeCl, it.ContainerLabel, it.ImageURL,
		it.LastCostCents, it.CostCurrency, it.Brand, it.PackSize,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update reescribe todos los campos del artículo (clave: sku).
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items SET name = $2, category_id = $3, supplier = $4, active = $5, stock_kind = $6,
			base_unit = $7, min_stock_bt = $8, unit_to_cl = $9, container_size_cl = $10, container_label = $11,
			image_url = $12, last_cost_cents = $13, cost_currency = $14, brand = $15, pack_size = $16
		WHERE sku = $1`,
		it.SKU, it.Name, it.CategoryID, it.Supplier, it.Active, it.StockKind,
		it.BaseUnit, it.MinStockBt, it.UnitToCl, it.ContainerSizeCl, it.ContainerLabel,
		it.ImageURL, it.LastCostCents, it.CostCurrency, it.Brand, it.PackSize,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
