//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/application/purchasing"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/domain/repository"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/postgres"
	"github.com/jhoicas/magazzino-api/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("magazzino_test"),
		tcPostgres.WithUsername("magazzino"),
		tcPostgres.WithPassword("magazzino"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	require.NoError(t, postgres.EnsureSchema(ctx, pool), "idempotente")
	return pool
}

func gin(packSize int) *entity.Item {
	cl := decimal.NewFromInt(70)
	return &entity.Item{
		ItemID: "itm_gin01", SKU: "GIN01", Name: "Gin Mare", CategoryID: entity.CategoryGin,
		Supplier: entity.SupplierDoreca, Active: true, StockKind: entity.StockKindUnit, BaseUnit: entity.BaseUnitCL,
		MinStockBt: decimal.RequireFromString("6.5"), UnitToCl: &cl, CostCurrency: entity.CurrencyEUR, PackSize: &packSize,
	}
}

func TestPostgres_Repositorios(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	items := postgres.NewItemRepository(pool)
	movs := postgres.NewMovementRepository(pool)

	require.NoError(t, items.Create(ctx, gin(6)))
	require.ErrorIs(t, items.Create(ctx, gin(6)), domain.ErrDuplicate)

	got, err := items.GetBySKU(ctx, "GIN01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.MinStockBt.Equal(decimal.RequireFromString("6.5")))
	assert.Equal(t, 6, *got.PackSize)
	assert.Nil(t, got.Brand)

	missing, err := items.GetBySKU(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)

	got.Active = false
	require.NoError(t, items.Update(ctx, got))
	got.SKU = "NOPE"
	require.ErrorIs(t, items.Update(ctx, got), domain.ErrNotFound)

	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, movs.Append(ctx,
		&entity.Movement{ID: "m1", SKU: "GIN01", Quantity: decimal.RequireFromString("12.5"), Type: entity.MovementTypeIN, Date: base},
		&entity.Movement{ID: "m2", SKU: "GIN01", Quantity: decimal.NewFromInt(2), Type: entity.MovementTypeOUT, Reason: entity.ReasonVendita, Date: base.Add(time.Hour)},
	))
	list, err := movs.ListBySKU(ctx, "GIN01")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m1", list[0].ID)
	assert.True(t, list[0].Quantity.Equal(decimal.RequireFromString("12.5")))

	from := base.Add(30 * time.Minute)
	out, err := movs.List(ctx, repository.MovementFilter{From: &from, Type: entity.MovementTypeOUT})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "m2", out[0].ID)
}

func TestPostgres_TxRunnerRevierte(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)
	boom := errors.New("boom")

	err := runner.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository, _ repository.OrderRepository) error {
		if err := items.Create(ctx, gin(6)); err != nil {
			return err
		}
		if err := movs.Append(ctx, &entity.Movement{ID: "m1", SKU: "GIN01", Quantity: decimal.NewFromInt(1), Type: entity.MovementTypeIN, Date: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	it, err := postgres.NewItemRepository(pool).GetBySKU(ctx, "GIN01")
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestPostgres_RecepcionDeOrden(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)
	items := postgres.NewItemRepository(pool)
	orders := postgres.NewOrderRepository(pool)
	require.NoError(t, items.Create(ctx, gin(6)))

	uc := purchasing.NewOrderUseCase(runner, orders, items, nil, nil, nil)
	o, err := uc.Create(ctx, dto.CreateOrderRequest{Supplier: "DORECA", Lines: []dto.OrderLineCreate{{SKU: "GIN01", QtyOrderedConf: 10}}})
	require.NoError(t, err)

	_, err = uc.Receive(ctx, o.OrderID, dto.ReceiveOrderRequest{Lines: []dto.ReceiveLine{{SKU: "GIN01", QtyReceivedNowConf: 11}}})
	require.ErrorIs(t, err, domain.ErrOverReceipt)

	got, err := uc.Receive(ctx, o.OrderID, dto.ReceiveOrderRequest{Lines: []dto.ReceiveLine{{SKU: "GIN01", QtyReceivedNowConf: 4}}})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartial, got.Status)

	view := inventory.NewWarehouseViewUseCase(items, postgres.NewMovementRepository(pool), nil)
	stock, err := view.CurrentStock(ctx, "GIN01")
	require.NoError(t, err)
	assert.True(t, stock.Equal(decimal.NewFromInt(24)))

	stored, err := orders.GetByID(ctx, o.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 4, stored.Lines[0].QtyReceivedConf)
}

func TestPostgres_SalidasConcurrentesNoDejanStockNegativo(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)
	require.NoError(t, postgres.NewItemRepository(pool).Create(ctx, gin(1)))

	uc := inventory.NewRegisterMovementUseCase(runner, postgres.NewMovementRepository(pool))
	ten := decimal.NewFromInt(10)
	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{SKU: "GIN01", Type: entity.MovementTypeIN, Quantity: &ten})
	require.NoError(t, err)

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			two := decimal.NewFromInt(2)
			_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
				SKU: "GIN01", Type: entity.MovementTypeOUT, Quantity: &two, Reason: entity.ReasonVendita,
			})
			errs <- err
		}()
	}
	ok, rejected := 0, 0
	for i := 0; i < workers; i++ {
		if err := <-errs; err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejected++
		}
	}
	assert.Equal(t, 5, ok)
	assert.Equal(t, 3, rejected)
}
