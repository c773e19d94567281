package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo registro append-only de movimientos. El orden cronológico lo da seq.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// List lista movimientos filtrados en orden de inserción.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT id, sku, quantity, type, reason, note, date FROM movements WHERE TRUE`
	var args []any
	pos := 1
	if f.SKU != "" {
		query += fmt.Sprintf(" AND sku = $%d", pos)
		args = append(args, f.SKU)
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *f.To)
	}
	query += " ORDER BY seq"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.SKU, &m.Quantity, &m.Type, &m.Reason, &m.Note, &m.Date); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListBySKU historial completo de un SKU.
func (r *MovementRepo) ListBySKU(ctx context.Context, sku string) ([]*entity.Movement, error) {
	return r.List(ctx, repository.MovementFilter{SKU: sku})
}

// Append inserta los movimientos en el orden recibido.
func (r *MovementRepo) Append(ctx context.Context, movements ...*entity.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(`
			INSERT INTO movements (id, sku, quantity, type, reason, note, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.ID, m.SKU, m.Quantity, m.Type, m.Reason, m.Note, m.Date,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range movements {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert movement: %w", err)
		}
	}
	return nil
}
