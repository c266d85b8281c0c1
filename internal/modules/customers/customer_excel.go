package customers

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"field-sales/internal/models"

	"github.com/xuri/excelize/v2"
)

// customerSheet is the sheet name used by both import and export files.
const customerSheet = "Customers"

// customerHeader is the column layout shared by the import template and the
// export file.
var customerHeader = []string{
	"Name",
	"Address",
	"District",
	"Phone",
	"Tax Office",
	"Tax Number",
	"Cycle",
	"Status",
}

// BuildCustomerExport renders the given customers as an .xlsx file.
func BuildCustomerExport(customers []models.Customer) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close only on error paths.

	index, err := f.NewSheet(customerSheet)
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

	for col, header := range customerHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: coordinates: %w", err)
		}
		if err := f.SetCellValue(customerSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(customerSheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: header style %s: %w", cell, err)
		}
	}
	if err := f.SetColWidth(customerSheet, "A", "H", 20); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: column width: %w", err)
	}

	for i, c := range customers {
		row := i + 2
		values := []interface{}{c.Name, c.Address, c.District, c.Phone, c.TaxOffice, c.TaxNumber, c.Cycle, c.Status}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("excel: coordinates: %w", err)
			}
			if err := f.SetCellValue(customerSheet, cell, v); err != nil {
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

// ParseCustomerImport reads an .xlsx upload into customer records. Rows with
// a missing name or an unknown cycle code are reported in the result errors
// and skipped rather than aborting the whole import.
func ParseCustomerImport(r io.Reader) ([]models.Customer, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("excel: open: %w", err)
	}
	defer f.Close()

	sheet := customerSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		// Fall back to the first sheet so hand-made files still import.
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("excel: read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, nil
	}

	var customers []models.Customer
	var rowErrors []string
	for i, row := range rows[1:] { // skip header
		rowNum := i + 2
		c := models.Customer{
			Name:      cellAt(row, 0),
			Address:   cellAt(row, 1),
			District:  cellAt(row, 2),
			Phone:     cellAt(row, 3),
			TaxOffice: cellAt(row, 4),
			TaxNumber: cellAt(row, 5),
			Cycle:     strings.ToUpper(cellAt(row, 6)),
		}
		if c.Name == "" {
			if rowIsEmpty(row) {
				continue
			}
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: missing name", rowNum))
			continue
		}
		if c.Cycle == "" {
			c.Cycle = models.CycleEveryWeek
		}
		if !models.KnownCycle(c.Cycle) {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: unknown cycle %q", rowNum, c.Cycle))
			continue
		}
		customers = append(customers, c)
	}
	return customers, rowErrors, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
