// Package xlsxexport renders a stored extraction run as an XLSX workbook.
package xlsxexport

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"billex/internal/domain"
)

const sheet = "Line Items"

// columns defines the header row.
var columns = []string{
	"Page No",
	"Page Type",
	"Item Name",
	"Rate",
	"Quantity",
	"Amount",
}

// RunToXLSX converts a run's stored result payload into workbook bytes.
func RunToXLSX(run *domain.ExtractionRun) ([]byte, error) {
	var data domain.ExtractionData
	if len(run.Result) > 0 {
		if err := json.Unmarshal(run.Result, &data); err != nil {
			return nil, fmt.Errorf("decoding stored result: %w", err)
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	write := func(col, row int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for i, h := range columns {
		write(i+1, 1, h)
	}

	row := 2
	for _, page := range data.PagewiseLineItems {
		for _, item := range page.BillItems {
			write(1, row, page.PageNo)
			write(2, row, string(page.PageType))
			write(3, row, item.ItemName)
			write(4, row, item.ItemRate)
			write(5, row, item.ItemQuantity)
			write(6, row, item.ItemAmount)
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
