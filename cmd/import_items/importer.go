package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/inventory"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/jsonfile"
	"github.com/shopspring/decimal"
)

const (
	tipoMateriaPrima = "MATERIA PRIMA"
	defaultUnitCl    = 70
)

type record map[string]any

func decodeRecords(r io.Reader) ([]record, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("la entrada no es un array JSON: %w", err)
	}
	return records, nil
}

func (r record) str(keys ...string) string {
	for _, k := range keys {
		switch v := r[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func (r record) num(keys ...string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(r.str(keys...), ",", ".")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func (r record) tipo() string {
	return strings.ToUpper(r.str("tipoArticolo", "tipoProdotto"))
}

func hasTipo(records []record) bool {
	for _, r := range records {
		if r.tipo() != "" {
			return true
		}
	}
	return false
}

func materiePrime(records []record) []record {
	var out []record
	for _, r := range records {
		if r.tipo() == tipoMateriaPrima {
			out = append(out, r)
		}
	}
	return out
}

// toItems convierte los registros en artículos normalizados. Registros sin SKU o sin nombre se descartan.
func toItems(records []record, unitCl decimal.Decimal) []*entity.Item {
	items := make([]*entity.Item, 0, len(records))
	for _, r := range records {
		it := &entity.Item{
			SKU:        r.str("sku", "codice", "SKU"),
			Name:       r.str("name", "descrizione", "nome"),
			CategoryID: strings.ToLower(r.str("categoryId", "categoria")),
			Supplier:   r.str("supplier", "fornitore"),
			Active:     true,
			StockKind:  entity.StockKindUnit,
		}
		if it.SKU == "" || it.Name == "" {
			continue
		}
		if b := r.str("brand", "marca"); b != "" {
			it.Brand = &b
		}
		if ps, ok := r.num("packSize", "confezione", "pezziPerConfezione"); ok && ps.IsInteger() {
			n := int(ps.IntPart())
			it.PackSize = &n
		}
		if m, ok := r.num("minStockBt", "scortaMinima"); ok {
			it.MinStockBt = m
		}
		cl, ok := r.num("unitToCl", "formatoCl")
		if !ok || !cl.IsPositive() {
			cl = unitCl
		}
		it.UnitToCl = &cl
		items = append(items, inventory.NormalizeItem(it))
	}
	return items
}

type importResult struct {
	Created, Updated, Skipped int
}

// importItems escribe los artículos en una sola unidad de trabajo.
func importItems(ctx context.Context, store *jsonfile.Store, items []*entity.Item, replace bool) (importResult, error) {
	var res importResult
	err := store.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.MovementRepository, _ repository.OrderRepository) error {
		for _, it := range items {
			existing, err := itemRepo.GetBySKU(ctx, it.SKU)
			if err != nil {
				return err
			}
			switch {
			case existing == nil:
				if err := itemRepo.Create(ctx, it); err != nil {
					return fmt.Errorf("crear %s: %w", it.SKU, err)
				}
				res.Created++
			case replace:
				it.ItemID = existing.ItemID
				if err := itemRepo.Update(ctx, it); err != nil {
					return fmt.Errorf("actualizar %s: %w", it.SKU, err)
				}
				res.Updated++
			default:
				res.Skipped++
			}
		}
		return nil
	})
	return res, err
}
