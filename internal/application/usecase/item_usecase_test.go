package usecase_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jhoicas/magazzino-api/internal/application/dto"
	appinv "github.com/jhoicas/magazzino-api/internal/application/inventory"
	"github.com/jhoicas/magazzino-api/internal/application/usecase"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/jsonfile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	key, contentType string
	body             []byte
}

func (f *fakeImages) Put(_ context.Context, key, contentType string, r io.Reader, _ int64) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.key, f.contentType, f.body = key, contentType, b
	return "https://cdn.example.com/magazzino/" + key, nil
}

func newItemUC(t *testing.T, images usecase.ImageStore) (*usecase.ItemUseCase, *jsonfile.Store) {
	t.Helper()
	s, err := jsonfile.Open(t.TempDir(), jsonfile.Options{})
	require.NoError(t, err)
	return usecase.NewItemUseCase(s, s.Items(), images), s
}

func ginRequest() dto.CreateItemRequest {
	cl := decimal.NewFromInt(70)
	six := 6
	return dto.CreateItemRequest{
		SKU: " gin01 ", Name: "Gin Mare", CategoryID: entity.CategoryGin,
		StockKind: entity.StockKindUnit, UnitToCl: &cl, PackSize: &six,
	}
}

func TestItemUseCase_Create(t *testing.T) {
	uc, _ := newItemUC(t, nil)
	ctx := context.Background()

	out, err := uc.Create(ctx, ginRequest())
	require.NoError(t, err)
	assert.Equal(t, "GIN01", out.SKU)
	assert.True(t, out.Active)
	assert.Equal(t, entity.SupplierVari, out.Supplier)
	assert.Equal(t, entity.BaseUnitCL, out.BaseUnit)

	_, err = uc.Create(ctx, ginRequest())
	require.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetBySKU(ctx, "gin01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, out.ItemID, got.ItemID)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestItemUseCase_Create_FactorDeConversion(t *testing.T) {
	uc, _ := newItemUC(t, nil)

	req := ginRequest()
	req.UnitToCl = nil
	_, err := uc.Create(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	req = ginRequest()
	req.StockKind = entity.StockKindVolumeContainer
	_, err = uc.Create(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "VOLUME_CONTAINER exige containerSizeCl")
}

func TestItemUseCase_Update(t *testing.T) {
	uc, _ := newItemUC(t, nil)
	ctx := context.Background()
	_, err := uc.Create(ctx, ginRequest())
	require.NoError(t, err)

	name := "Gin Mare 70"
	minStock := decimal.NewFromInt(12)
	out, err := uc.Update(ctx, "GIN01", dto.UpdateItemRequest{Name: &name, MinStockBt: &minStock})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.True(t, out.MinStockBt.Equal(minStock))

	_, err = uc.Update(ctx, "NOPE", dto.UpdateItemRequest{Name: &name})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_DesactivarConStock(t *testing.T) {
	uc, s := newItemUC(t, nil)
	ctx := context.Background()
	_, err := uc.Create(ctx, ginRequest())
	require.NoError(t, err)

	movs := appinv.NewRegisterMovementUseCase(s, s.Movements())
	q := decimal.NewFromInt(3)
	_, err = movs.RegisterMovement(ctx, appinv.MovementInputDTO{SKU: "GIN01", Type: "IN", Quantity: &q})
	require.NoError(t, err)

	off := false
	_, err = uc.Update(ctx, "GIN01", dto.UpdateItemRequest{Active: &off})
	require.ErrorIs(t, err, domain.ErrStockNotZero)

	// Con stock a cero sí se puede.
	zero := decimal.Zero
	_, err = movs.RegisterMovement(ctx, appinv.MovementInputDTO{SKU: "GIN01", Type: "INVENTORY", Quantity: &zero})
	require.NoError(t, err)
	out, err := uc.Update(ctx, "GIN01", dto.UpdateItemRequest{Active: &off})
	require.NoError(t, err)
	assert.False(t, out.Active)
}

func TestItemUseCase_Update_ArticuloHeredadoSinFactor(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"sku":"rum01","name":"Ron","categoryId":"rhum","supplier":"vari","stockKind":"UNIT","baseUnit":"CL","active":true}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonfile.ItemsFile), []byte(legacy), 0o644))
	s, err := jsonfile.Open(dir, jsonfile.Options{})
	require.NoError(t, err)
	uc := usecase.NewItemUseCase(s, s.Items(), nil)
	ctx := context.Background()

	minStock := decimal.NewFromInt(3)
	out, err := uc.Update(ctx, "RUM01", dto.UpdateItemRequest{MinStockBt: &minStock})
	require.NoError(t, err)
	assert.True(t, out.MinStockBt.Equal(minStock))

	off := false
	out, err = uc.Update(ctx, "RUM01", dto.UpdateItemRequest{Active: &off})
	require.NoError(t, err)
	assert.False(t, out.Active)

	// Cambiar la configuración de stock sí vuelve a exigir el factor.
	vc := entity.StockKindVolumeContainer
	_, err = uc.Update(ctx, "RUM01", dto.UpdateItemRequest{StockKind: &vc})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUseCase_UploadImage(t *testing.T) {
	images := &fakeImages{}
	uc, _ := newItemUC(t, images)
	ctx := context.Background()
	_, err := uc.Create(ctx, ginRequest())
	require.NoError(t, err)
	require.True(t, uc.ImagesEnabled())

	out, err := uc.UploadImage(ctx, "gin01", "Foto.PNG", "image/png", bytes.NewReader([]byte("png")), 3)
	require.NoError(t, err)
	assert.Equal(t, "items/GIN01.png", images.key)
	assert.Equal(t, []byte("png"), images.body)
	require.NotNil(t, out.ImageURL)
	assert.Equal(t, "https://cdn.example.com/magazzino/items/GIN01.png", *out.ImageURL)

	_, err = uc.UploadImage(ctx, "GIN01", "doc.pdf", "application/pdf", bytes.NewReader(nil), 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadImage(ctx, "NOPE", "a.png", "image/png", bytes.NewReader(nil), 0)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_UploadImage_SinAlmacenamiento(t *testing.T) {
	uc, _ := newItemUC(t, nil)
	assert.False(t, uc.ImagesEnabled())
	_, err := uc.UploadImage(context.Background(), "GIN01", "a.png", "image/png", bytes.NewReader(nil), 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
