package repository

import (
	"context"
	"time"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	SKU  string
	Type string
	From *time.Time
	To   *time.Time
}

// MovementRepository define el puerto del registro de movimientos (append-only).
// Los listados se devuelven siempre en orden cronológico de inserción.
type MovementRepository interface {
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	ListBySKU(ctx context.Context, sku string) ([]*entity.Movement, error)
	Append(ctx context.Context, movements ...*entity.Movement) error
}
