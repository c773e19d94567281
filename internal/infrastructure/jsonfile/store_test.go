package jsonfile_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/jsonfile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newItem(sku string) *entity.Item {
	cl := decimal.NewFromInt(70)
	return &entity.Item{
		ItemID: "itm_" + sku, SKU: sku, Name: sku, CategoryID: entity.CategoryVino, Supplier: entity.SupplierAlpori,
		Active: true, StockKind: entity.StockKindUnit, BaseUnit: entity.BaseUnitCL, UnitToCl: &cl,
		MinStockBt: decimal.NewFromInt(3), CostCurrency: entity.CurrencyEUR,
	}
}

func TestOpen_DirectorioVacio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := jsonfile.Open(dir, jsonfile.Options{})
	require.NoError(t, err)

	items, err := s.Items().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.DirExists(t, dir)
	assert.NoFileExists(t, filepath.Join(dir, jsonfile.ItemsFile), "no se escribe nada hasta la primera unidad de trabajo")
}

func TestPersistenciaEntreAperturas(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s, err := jsonfile.Open(dir, jsonfile.Options{})
	require.NoError(t, err)

	require.NoError(t, s.Items().Create(ctx, newItem("BAR01")))
	date := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Movements().Append(ctx,
		&entity.Movement{ID: "m1", SKU: "BAR01", Quantity: decimal.RequireFromString("12.5"), Type: entity.MovementTypeIN, Date: date},
		&entity.Movement{ID: "m2", SKU: "BAR01", Quantity: decimal.NewFromInt(2), Type: entity.MovementTypeOUT, Reason: entity.ReasonVendita, Date: date.Add(time.Hour)},
	))
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{
		OrderID: "ord_1", Supplier: entity.SupplierAlpori, Status: entity.OrderStatusDraft, CreatedAt: date,
		Lines: []entity.OrderLine{{SKU: "BAR01", QtyOrderedConf: 3}},
	}))

	reopened, err := jsonfile.Open(dir, jsonfile.Options{})
	require.NoError(t, err)

	it, err := reopened.Items().GetBySKU(ctx, "BAR01")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.True(t, it.MinStockBt.Equal(decimal.NewFromInt(3)))
	assert.True(t, it.UnitToCl.Equal(decimal.NewFromInt(70)))

	movs, err := reopened.Movements().ListBySKU(ctx, "BAR01")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "m1", movs[0].ID)
	assert.True(t, movs[0].Quantity.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, entity.ReasonVendita, movs[1].Reason)

	o, err := reopened.Orders().GetByID(ctx, "ord_1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, 3, o.Lines[0].QtyOrderedConf)
	assert.True(t, o.CreatedAt.Equal(date))
}

func TestRun_ErrorNoPublicaNiEscribe(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s, err := jsonfile.Open(dir, jsonfile.Options{})
	require.NoError(t, err)
	boom := errors.New("boom")

	err = s.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository, _ repository.OrderRepository) error {
		if err := items.Create(ctx, newItem("GIN01")); err != nil {
			return err
		}
		if err := movs.Append(ctx, &entity.Movement{ID: "m1", SKU: "GIN01", Quantity: decimal.NewFromInt(1), Type: entity.MovementTypeIN}); err != nil {
			return err
		}
		// dentro de la unidad de trabajo los cambios son visibles
		got, err := items.GetBySKU(ctx, "GIN01")
		if err != nil || got == nil {
			return errors.New("artículo no visible dentro de la transacción")
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	it, err := s.Items().GetBySKU(ctx, "GIN01")
	require.NoError(t, err)
	assert.Nil(t, it)
	movs, err := s.Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
	assert.NoFileExists(t, filepath.Join(dir, jsonfile.ItemsFile))
}

func TestRun_ContextoCancelado(t *testing.T) {
	s, err := jsonfile.Open(t.TempDir(), jsonfile.Options{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err = s.Run(ctx, func(repository.ItemRepository, repository.MovementRepository, repository.OrderRepository) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRepos_DuplicadoYNoEncontrado(t *testing.T) {
	ctx := context.Background()
	s, err := jsonfile.Open(t.TempDir(), jsonfile.Options{})
	require.NoError(t, err)

	require.NoError(t, s.Items().Create(ctx, newItem("A1")))
	require.ErrorIs(t, s.Items().Create(ctx, newItem("A1")), domain.ErrDuplicate)
	require.ErrorIs(t, s.Items().Update(ctx, newItem("B1")), domain.ErrNotFound)

	o := &entity.Order{OrderID: "ord_x", Supplier: entity.SupplierVari, Status: entity.OrderStatusDraft}
	require.NoError(t, s.Orders().Create(ctx, o))
	require.ErrorIs(t, s.Orders().Create(ctx, o), domain.ErrDuplicate)
	require.ErrorIs(t, s.Orders().Update(ctx, &entity.Order{OrderID: "ord_y"}), domain.ErrNotFound)

	missing, err := s.Orders().GetByID(ctx, "ord_y")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepos_DevuelvenCopias(t *testing.T) {
	ctx := context.Background()
	s, err := jsonfile.Open(t.TempDir(), jsonfile.Options{})
	require.NoError(t, err)
	require.NoError(t, s.Items().Create(ctx, newItem("C1")))

	it, err := s.Items().GetBySKU(ctx, "C1")
	require.NoError(t, err)
	it.Name = "cambiado"

	again, err := s.Items().GetBySKU(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "C1", again.Name)
}

func TestMovements_Filtros(t *testing.T) {
	ctx := context.Background()
	s, err := jsonfile.Open(t.TempDir(), jsonfile.Options{})
	require.NoError(t, err)
	day := func(d int) time.Time { return time.Date(2025, 2, d, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, s.Movements().Append(ctx,
		&entity.Movement{ID: "1", SKU: "A", Quantity: decimal.NewFromInt(1), Type: entity.MovementTypeIN, Date: day(1)},
		&entity.Movement{ID: "2", SKU: "B", Quantity: decimal.NewFromInt(1), Type: entity.MovementTypeIN, Date: day(2)},
		&entity.Movement{ID: "3", SKU: "A", Quantity: decimal.NewFromInt(1), Type: entity.MovementTypeOUT, Date: day(3)},
	))

	ids := func(f repository.MovementFilter) []string {
		list, err := s.Movements().List(ctx, f)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, m := range list {
			out = append(out, m.ID)
		}
		return out
	}
	from, to := day(2), day(3)
	assert.Equal(t, []string{"1", "2", "3"}, ids(repository.MovementFilter{}))
	assert.Equal(t, []string{"1", "3"}, ids(repository.MovementFilter{SKU: "A"}))
	assert.Equal(t, []string{"3"}, ids(repository.MovementFilter{Type: entity.MovementTypeOUT}))
	assert.Equal(t, []string{"2", "3"}, ids(repository.MovementFilter{From: &from}))
	assert.Equal(t, []string{"2"}, ids(repository.MovementFilter{From: &from, To: &from}))
	assert.Equal(t, []string{"1", "2", "3"}, ids(repository.MovementFilter{To: &to}))
}

func TestOpen_FormatosAntiguos(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonfile.ItemsFile, `[
		{"sku":" gin01 ","name":"Gin","categoryId":"uncategorized","supplier":"doreca","unitToCl":70,"packSize":6},
		{"sku":"old","name":"Sin estado","categoryId":"whiskey","supplier":"ACME","active":false,"packSize":0}
	]`)
	writeFile(t, dir, jsonfile.MovementsFile, `[
		{"id":"m1","sku":"gin01","qty":4,"type":"in","date":"2024-05-01T10:00:00Z"}
	]`)
	writeFile(t, dir, jsonfile.OrdersFile, `[
		{"orderId":"ord_old","supplier":"doreca","status":"partial","createdAt":"2024-05-01T09:00:00Z",
		 "lines":[{"sku":"gin01","qtyOrderedPz":13,"qtyReceivedPz":11}]}
	]`)

	s, err := jsonfile.Open(dir, jsonfile.Options{})
	require.NoError(t, err)
	ctx := context.Background()

	gin, err := s.Items().GetBySKU(ctx, "GIN01")
	require.NoError(t, err)
	require.NotNil(t, gin)
	assert.True(t, gin.Active, "sin campo active se considera activo")
	assert.Equal(t, entity.CategoryBevande, gin.CategoryID)
	assert.Equal(t, entity.SupplierDoreca, gin.Supplier)
	assert.NotEmpty(t, gin.ItemID)

	old, err := s.Items().GetBySKU(ctx, "OLD")
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.False(t, old.Active)
	assert.Equal(t, entity.SupplierVari, old.Supplier)
	assert.Nil(t, old.PackSize)

	movs, err := s.Movements().ListBySKU(ctx, "GIN01")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(4)))

	o, err := s.Orders().GetByID(ctx, "ord_old")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, entity.OrderStatusPartial, o.Status)
	assert.Equal(t, 3, o.Lines[0].QtyOrderedConf, "13 pz / 6 hacia arriba")
	assert.Equal(t, 1, o.Lines[0].QtyReceivedConf, "11 pz / 6 hacia abajo")
}

func TestOpen_OrdenAntiguaSinCampos(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonfile.OrdersFile, `[{"supplier":"vari","lines":[{"sku":"gin01","qtyOrderedConf":2}]}]`)

	s, err := jsonfile.Open(dir, jsonfile.Options{})
	require.NoError(t, err)

	orders, err := s.Orders().List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.True(t, strings.HasPrefix(o.OrderID, entity.OrderIDPrefix), o.OrderID)
	assert.Equal(t, entity.OrderStatusDraft, o.Status)
	assert.False(t, o.CreatedAt.IsZero())
	assert.Equal(t, 2, o.Lines[0].QtyOrderedConf)
}

func TestOpen_MigrateItemsReescribe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonfile.ItemsFile, `[{"sku":"vod01","name":" Vodka ","categoryId":"vodka","supplier":"alpori","unitToCl":100}]`)

	_, err := jsonfile.Open(dir, jsonfile.Options{MigrateItems: true})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, jsonfile.ItemsFile))
	require.NoError(t, err)
	var recs []map[string]any
	require.NoError(t, json.Unmarshal(raw, &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "VOD01", recs[0]["sku"])
	assert.Equal(t, "Vodka", recs[0]["name"])
	assert.Equal(t, "ALPORI", recs[0]["supplier"])
	assert.Equal(t, true, recs[0]["active"])
	assert.Equal(t, "CL", recs[0]["baseUnit"])
	assert.Equal(t, "EUR", recs[0]["costCurrency"])
}

func TestOpen_ArchivoCorrupto(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonfile.OrdersFile, `{no es json`)

	_, err := jsonfile.Open(dir, jsonfile.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), jsonfile.OrdersFile)
}
