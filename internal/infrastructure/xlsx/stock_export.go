// Package xlsx exporta la vista de almacén a Excel.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/xuri/excelize/v2"
)

const sheet = "Magazzino"

var headers = []string{"SKU", "Nome", "Stock BT", "Min BT", "Sotto minimo"}

// WriteStock escribe las filas como libro .xlsx en w.
func WriteStock(w io.Writer, rows []dto.WarehouseRow, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	alertStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#C00000"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headStyle)
	}

	for i, r := range rows {
		n := i + 2
		stock, _ := r.StockBt.Float64()
		minStock, _ := r.MinStockBt.Float64()
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", n), r.SKU)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", n), r.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", n), stock)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", n), minStock)
		if r.UnderMin {
			cell := fmt.Sprintf("E%d", n)
			_ = f.SetCellValue(sheet, cell, "SI")
			_ = f.SetCellStyle(sheet, cell, cell, alertStyle)
		}
	}

	footer := len(rows) + 3
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", footer), "Generato il "+generatedAt.Format("02/01/2006 15:04"))

	for i, w := range []float64{18, 40, 12, 12, 14} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}
