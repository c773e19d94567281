package repository

import (
	"context"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes de compra.
// GetByID devuelve (nil, nil) si la orden no existe.
type OrderRepository interface {
	List(ctx context.Context) ([]*entity.Order, error)
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
}
