package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Cash Flow"

// WriteXLSX renders a flattened table as a single-sheet workbook with a bold
// header row and 2-decimal number formatting on value cells.
func WriteXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("creating number style: %w", err)
	}

	for col, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header cell: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, row := range t.Rows {
		labelCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing label cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, labelCell, row.Label); err != nil {
			return fmt.Errorf("writing label cell: %w", err)
		}
		for j, v := range row.Values {
			cell, err := excelize.CoordinatesToCellName(j+2, i+2)
			if err != nil {
				return fmt.Errorf("addressing value cell: %w", err)
			}
			fv, _ := v.Float64()
			if err := f.SetCellValue(sheetName, cell, fv); err != nil {
				return fmt.Errorf("writing value cell: %w", err)
			}
			if err := f.SetCellStyle(sheetName, cell, cell, moneyStyle); err != nil {
				return fmt.Errorf("styling value cell: %w", err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("sizing label column: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
