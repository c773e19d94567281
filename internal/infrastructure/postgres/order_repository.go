package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes de compra sobre PostgreSQL. Las líneas se guardan como JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

type lineJSON struct {
	SKU             string `json:"sku"`
	QtyOrderedConf  int    `json:"qtyOrderedConf"`
	QtyReceivedConf int    `json:"qtyReceivedConf"`
}

const orderColumns = `order_id, supplier, status, created_at, sent_at, received_at, notes, lines`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o   entity.Order
		raw []byte
	)
	if err := row.Scan(&o.OrderID, &o.Supplier, &o.Status, &o.CreatedAt, &o.SentAt, &o.ReceivedAt, &o.Notes, &raw); err != nil {
		return nil, err
	}
	var lines []lineJSON
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode lines: %w", err)
	}
	o.Lines = make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		o.Lines = append(o.Lines, entity.OrderLine{SKU: l.SKU, QtyOrderedConf: l.QtyOrderedConf, QtyReceivedConf: l.QtyReceivedConf})
	}
	return &o, nil
}

func encodeLines(lines []entity.OrderLine) (string, error) {
	out := make([]lineJSON, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineJSON{SKU: l.SKU, QtyOrderedConf: l.QtyOrderedConf, QtyReceivedConf: l.QtyReceivedConf})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode lines: %w", err)
	}
	return string(b), nil
}

// List devuelve todas las órdenes (el filtrado y el orden los decide el caso de uso).
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM purchase_orders ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// GetByID obtiene una orden; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE order_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Create inserta una orden.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	lines, err := encodeLines(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO purchase_orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)`,
		o.OrderID, o.Supplier, o.Status, o.CreatedAt, o.SentAt, o.ReceivedAt, o.Notes, lines,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// Update reescribe la orden completa.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	lines, err := encodeLines(o.Lines)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET supplier = $2, status = $3, sent_at = $4, received_at = $5, notes = $6, lines = $7::jsonb
		WHERE order_id = $1`,
		o.OrderID, o.Supplier, o.Status, o.SentAt, o.ReceivedAt, o.Notes, lines,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
