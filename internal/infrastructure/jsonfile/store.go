// Package jsonfile guarda artículos, movimientos y órdenes como arrays JSON en disco.
//
// Las colecciones se cargan una vez al arrancar y viven en memoria detrás de un mutex.
// Cada unidad de trabajo edita copias; si termina sin error se escriben los archivos
// modificados (archivo temporal + rename) y solo entonces se publican las copias.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	appinv "github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
)

// Nombres de archivo dentro del directorio de datos.
const (
	ItemsFile     = "items.json"
	MovementsFile = "movements.json"
	OrdersFile    = "orders.json"
)

var _ appinv.TxRunner = (*Store)(nil)

// Options opciones de apertura.
type Options struct {
	// MigrateItems reescribe items.json con los artículos ya normalizados.
	MigrateItems bool
}

type state struct {
	items     []*entity.Item
	movements []*entity.Movement
	orders    []*entity.Order

	itemsDirty, movementsDirty, ordersDirty bool
}

// Store almacén en archivos JSON. Seguro para uso concurrente.
type Store struct {
	dir string
	mu  sync.RWMutex
	cur *state
}

// Open carga (o inicializa vacías) las tres colecciones desde dir.
func Open(dir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	s := &Store{dir: dir, cur: &state{}}

	var items []itemRecord
	if err := readJSON(s.path(ItemsFile), &items); err != nil {
		return nil, err
	}
	packSizes := make(map[string]int, len(items))
	for _, r := range items {
		it := r.toEntity()
		s.cur.items = append(s.cur.items, it)
		packSizes[it.SKU] = it.EffectivePackSize()
	}

	var movs []movementRecord
	if err := readJSON(s.path(MovementsFile), &movs); err != nil {
		return nil, err
	}
	for _, r := range movs {
		s.cur.movements = append(s.cur.movements, r.toEntity())
	}

	var orders []orderRecord
	if err := readJSON(s.path(OrdersFile), &orders); err != nil {
		return nil, err
	}
	lookup := func(sku string) int {
		if ps, ok := packSizes[sku]; ok {
			return ps
		}
		return entity.DefaultPackSize
	}
	for _, r := range orders {
		s.cur.orders = append(s.cur.orders, r.toEntity(lookup))
	}

	if opts.MigrateItems {
		s.cur.itemsDirty = true
		if err := s.flush(s.cur); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dir directorio de datos.
func (s *Store) Dir() string { return s.dir }

// Items repositorio de artículos fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Orders repositorio de órdenes fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Run ejecuta fn sobre copias de las colecciones. Solo si fn no devuelve error se escriben
// los archivos modificados y se publican las copias. Las unidades de trabajo se serializan.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := &state{
		items: append([]*entity.Item(nil), s.cur.items...),
		// capacidad ajustada: un append en la copia nunca escribe sobre el array publicado
		movements: s.cur.movements[:len(s.cur.movements):len(s.cur.movements)],
		orders:    append([]*entity.Order(nil), s.cur.orders...),
	}
	if err := fn(&ItemRepo{s: s, tx: work}, &MovementRepo{s: s, tx: work}, &OrderRepo{s: s, tx: work}); err != nil {
		return err
	}
	if err := s.flush(work); err != nil {
		return err
	}
	work.itemsDirty, work.movementsDirty, work.ordersDirty = false, false, false
	s.cur = work
	return nil
}

// view ejecuta fn sobre el estado de la transacción o, fuera de ella, sobre el publicado.
func (s *Store) view(tx *state, fn func(st *state)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.cur)
}

func (s *Store) flush(st *state) error {
	if st.itemsDirty {
		recs := make([]itemRecord, 0, len(st.items))
		for _, it := range st.items {
			recs = append(recs, itemToRecord(it))
		}
		if err := writeJSON(s.path(ItemsFile), recs); err != nil {
			return err
		}
	}
	if st.movementsDirty {
		recs := make([]movementRecord, 0, len(st.movements))
		for _, m := range st.movements {
			recs = append(recs, movementToRecord(m))
		}
		if err := writeJSON(s.path(MovementsFile), recs); err != nil {
			return err
		}
	}
	if st.ordersDirty {
		recs := make([]orderRecord, 0, len(st.orders))
		for _, o := range st.orders {
			recs = append(recs, orderToRecord(o))
		}
		if err := writeJSON(s.path(OrdersFile), recs); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("leer %s: %w", filepath.Base(path), err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decodificar %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON escribe en un temporal del mismo directorio y lo renombra sobre el destino.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("reemplazar %s: %w", filepath.Base(path), err)
	}
	return nil
}
