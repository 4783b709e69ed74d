package report

import (
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/docguard/anonymizer-cli/internal/apperr"
)

const summarySheet = "Summary"

var summaryHeader = []string{"index", "original_value", "uuid", "category", "method", "confidence"}

// WriteXlsx writes the tabular summary (spec §4.8) to path: one row per
// replacement occurrence, duplicates included, in rows' given order.
func WriteXlsx(rows []Row, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), summarySheet)
	for c, h := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return apperr.Output(path, err)
		}
	}

	for r, row := range rows {
		values := []any{row.Index, row.OriginalValue, row.UUID, row.Category, row.Method, row.Confidence}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return apperr.Output(path, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		os.Remove(path)
		return apperr.Output(path, err)
	}
	return nil
}
