package jsonfile

import (
	"context"

	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository     = (*ItemRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
)

// ── Artículos ─────────────────────────────────────────────────────────────────

// ItemRepo implementación de ItemRepository. Con tx != nil opera dentro de una unidad de trabajo;
// si no, cada escritura abre la suya.
type ItemRepo struct {
	s  *Store
	tx *state
}

func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	r.s.view(r.tx, func(st *state) {
		out = make([]*entity.Item, 0, len(st.items))
		for _, it := range st.items {
			out = append(out, it.Clone())
		}
	})
	return out, nil
}

func (r *ItemRepo) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	var out *entity.Item
	r.s.view(r.tx, func(st *state) {
		if i := indexItem(st, sku); i >= 0 {
			out = st.items[i].Clone()
		}
	})
	return out, nil
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if r.tx == nil {
		return r.s.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository, _ repository.OrderRepository) error {
			return items.Create(ctx, item)
		})
	}
	if indexItem(r.tx, item.SKU) >= 0 {
		return domain.ErrDuplicate
	}
	r.tx.items = append(r.tx.items, item.Clone())
	r.tx.itemsDirty = true
	return nil
}

func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	if r.tx == nil {
		return r.s.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository, _ repository.OrderRepository) error {
			return items.Update(ctx, item)
		})
	}
	i := indexItem(r.tx, item.SKU)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.tx.items[i] = item.Clone()
	r.tx.itemsDirty = true
	return nil
}

func indexItem(st *state, sku string) int {
	for i, it := range st.items {
		if it.SKU == sku {
			return i
		}
	}
	return -1
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// MovementRepo implementación append-only de MovementRepository.
type MovementRepo struct {
	s  *Store
	tx *state
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	r.s.view(r.tx, func(st *state) {
		out = make([]*entity.Movement, 0, len(st.movements))
		for _, m := range st.movements {
			if f.SKU != "" && m.SKU != f.SKU {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if f.From != nil && m.Date.Before(*f.From) {
				continue
			}
			if f.To != nil && m.Date.After(*f.To) {
				continue
			}
			c := *m
			out = append(out, &c)
		}
	})
	return out, nil
}

func (r *MovementRepo) ListBySKU(ctx context.Context, sku string) ([]*entity.Movement, error) {
	return r.List(ctx, repository.MovementFilter{SKU: sku})
}

func (r *MovementRepo) Append(ctx context.Context, movements ...*entity.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	if r.tx == nil {
		return r.s.Run(ctx, func(_ repository.ItemRepository, movs repository.MovementRepository, _ repository.OrderRepository) error {
			return movs.Append(ctx, movements...)
		})
	}
	for _, m := range movements {
		c := *m
		r.tx.movements = append(r.tx.movements, &c)
	}
	r.tx.movementsDirty = true
	return nil
}

// ── Órdenes ───────────────────────────────────────────────────────────────────

// OrderRepo implementación de OrderRepository.
type OrderRepo struct {
	s  *Store
	tx *state
}

func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	var out []*entity.Order
	r.s.view(r.tx, func(st *state) {
		out = make([]*entity.Order, 0, len(st.orders))
		for _, o := range st.orders {
			out = append(out, o.Clone())
		}
	})
	return out, nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.s.view(r.tx, func(st *state) {
		if i := indexOrder(st, id); i >= 0 {
			out = st.orders[i].Clone()
		}
	})
	return out, nil
}

func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if r.tx == nil {
		return r.s.Run(ctx, func(_ repository.ItemRepository, _ repository.MovementRepository, orders repository.OrderRepository) error {
			return orders.Create(ctx, order)
		})
	}
	if indexOrder(r.tx, order.OrderID) >= 0 {
		return domain.ErrDuplicate
	}
	r.tx.orders = append(r.tx.orders, order.Clone())
	r.tx.ordersDirty = true
	return nil
}

func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	if r.tx == nil {
		return r.s.Run(ctx, func(_ repository.ItemRepository, _ repository.MovementRepository, orders repository.OrderRepository) error {
			return orders.Update(ctx, order)
		})
	}
	i := indexOrder(r.tx, order.OrderID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.tx.orders[i] = order.Clone()
	r.tx.ordersDirty = true
	return nil
}

func indexOrder(st *state, id string) int {
	for i, o := range st.orders {
		if o.OrderID == id {
			return i
		}
	}
	return -1
}
