package repository

import (
	"context"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para el registro de artículos (DIP).
// GetBySKU devuelve (nil, nil) si el SKU no existe.
type ItemRepository interface {
	List(ctx context.Context) ([]*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	Create(ctx context.Context, item *entity.Item) error
	Update(ctx context.Context, item *entity.Item) error
}
