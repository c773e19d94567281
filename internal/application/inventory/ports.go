package inventory

import (
	"context"

	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando repositorios atados a ella.
// Si fn devuelve error no se persiste nada: garantiza atomicidad para movimientos y recepciones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// ViewCache memoriza la vista de almacén ya calculada. Los fallos del backend se tratan como miss.
type ViewCache interface {
	GetRows(ctx context.Context) ([]dto.WarehouseRow, bool)
	SetRows(ctx context.Context, rows []dto.WarehouseRow)
	Invalidate(ctx context.Context)
}

// NoopViewCache caché desactivada.
type NoopViewCache struct{}

func (NoopViewCache) GetRows(context.Context) ([]dto.WarehouseRow, bool) { return nil, false }
func (NoopViewCache) SetRows(context.Context, []dto.WarehouseRow)        {}
func (NoopViewCache) Invalidate(context.Context)                         {}

type invalidatingTxRunner struct {
	inner TxRunner
	cache ViewCache
}

// WithViewInvalidation envuelve un TxRunner para invalidar la vista de almacén tras cada commit.
func WithViewInvalidation(inner TxRunner, cache ViewCache) TxRunner {
	if cache == nil {
		return inner
	}
	return &invalidatingTxRunner{inner: inner, cache: cache}
}

func (r *invalidatingTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := r.inner.Run(ctx, fn); err != nil {
		return err
	}
	r.cache.Invalidate(ctx)
	return nil
}
