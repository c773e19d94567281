package postgres

import (
	"context"
	"fmt"
)

// schemaDDL crea las tablas si no existen. seq da el orden de inserción
// (registro de artículos y orden cronológico de movimientos).
const schemaDDL = `
CREATE TABLE IF NOT EXISTS items (
	seq               BIGSERIAL,
	item_id           TEXT NOT NULL UNIQUE,
	sku               TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	category_id       TEXT NOT NULL,
	supplier          TEXT NOT NULL,
	active            BOOLEAN NOT NULL DEFAULT TRUE,
	stock_kind        TEXT NOT NULL,
	base_unit         TEXT NOT NULL DEFAULT 'CL',
	min_stock_bt      NUMERIC NOT NULL DEFAULT 0,
	unit_to_cl        NUMERIC,
	container_size_cl NUMERIC,
	container_label   TEXT,
	image_url         TEXT,
	last_cost_cents   BIGINT,
	cost_currency     TEXT NOT NULL DEFAULT 'EUR',
	brand             TEXT,
	pack_size         INTEGER
);

CREATE TABLE IF NOT EXISTS movements (
	seq      BIGSERIAL PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	sku      TEXT NOT NULL,
	quantity NUMERIC NOT NULL CHECK (quantity >= 0),
	type     TEXT NOT NULL,
	reason   TEXT NOT NULL DEFAULT '',
	note     TEXT NOT NULL DEFAULT '',
	date     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS movements_sku_seq_idx ON movements (sku, seq);

CREATE TABLE IF NOT EXISTS purchase_orders (
	order_id    TEXT PRIMARY KEY,
	supplier    TEXT NOT NULL,
	status      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	sent_at     TIMESTAMPTZ,
	received_at TIMESTAMPTZ,
	notes       TEXT,
	lines       JSONB NOT NULL DEFAULT '[]'
);
`

// EnsureSchema aplica el DDL (idempotente).
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
