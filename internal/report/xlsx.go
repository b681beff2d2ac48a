package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName       = "Report"
	gbpNumberFormat = `"£"#,##0.00`
	XLSXMimeType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteXLSX writes a single-sheet workbook: header, one row per case and a
// bold TOTALS row. Money cells are numbers rounded to pence with a GBP
// number format.
func (r *Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	numFmt := gbpNumberFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	totalsMoney, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, col := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", "G1", header); err != nil {
		return err
	}

	rowNo := 2
	for _, row := range r.Rows {
		values := []interface{}{
			row.CaseID,
			row.Debtor,
			toFloat(row.Summary.Totals.Invoice),
			toFloat(row.Summary.Totals.Payment),
			toFloat(row.Summary.Totals.Charge),
			toFloat(row.Summary.Totals.Interest),
			toFloat(row.Summary.Balance),
		}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", rowNo), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("C%d", rowNo), fmt.Sprintf("G%d", rowNo), money); err != nil {
			return err
		}
		rowNo++
	}

	totals := []interface{}{
		"TOTALS",
		"",
		toFloat(r.Totals.Totals.Invoice),
		toFloat(r.Totals.Totals.Payment),
		toFloat(r.Totals.Totals.Charge),
		toFloat(r.Totals.Totals.Interest),
		toFloat(r.Totals.Balance),
	}
	if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", rowNo), &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("B%d", rowNo), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("C%d", rowNo), fmt.Sprintf("G%d", rowNo), totalsMoney); err != nil {
		return err
	}

	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "C", "G", 14); err != nil {
		return err
	}

	return f.Write(w)
}

func toFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
