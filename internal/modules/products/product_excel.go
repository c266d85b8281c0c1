package products

import (
	"bytes"
	"fmt"

	"field-sales/internal/models"

	"github.com/xuri/excelize/v2"
)

const productSheet = "Products"

var productHeader = []string{
	"Code",
	"Name",
	"Unit",
	"Unit Price",
	"VAT Rate",
	"Active",
}

// BuildProductExport renders the catalog as an .xlsx file.
func BuildProductExport(products []models.Product) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(productSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: header style: %w", err)
	}

	for col, header := range productHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: coordinates: %w", err)
		}
		if err := f.SetCellValue(productSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(productSheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: header style %s: %w", cell, err)
		}
	}
	if err := f.SetColWidth(productSheet, "A", "F", 18); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: column width: %w", err)
	}

	for i, p := range products {
		row := i + 2
		values := []interface{}{p.Code, p.Name, p.Unit, p.UnitPrice, p.VATRate, p.IsActive}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("excel: coordinates: %w", err)
			}
			if err := f.SetCellValue(productSheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("excel: set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("excel: close: %w", err)
	}
	return buf.Bytes(), nil
}
