package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteStock(t *testing.T) {
	rows := []dto.WarehouseRow{
		{SKU: "GIN01", Name: "Gin Mare", StockBt: decimal.RequireFromString("4.5"), MinStockBt: decimal.NewFromInt(6), UnderMin: true},
		{SKU: "VOD01", Name: "Vodka", StockBt: decimal.NewFromInt(12), MinStockBt: decimal.Zero},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteStock(&buf, rows, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheet}, f.GetSheetList())

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "SKU", cell("A1"))
	assert.Equal(t, "Sotto minimo", cell("E1"))
	assert.Equal(t, "GIN01", cell("A2"))
	assert.Equal(t, "4.5", cell("C2"))
	assert.Equal(t, "SI", cell("E2"))
	assert.Equal(t, "VOD01", cell("A3"))
	assert.Empty(t, cell("E3"))
	assert.Equal(t, "Generato il 10/03/2025 09:30", cell("A5"))
}

func TestWriteStock_SinFilas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStock(&buf, nil, time.Now()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "SKU", rows[0][0])
}
