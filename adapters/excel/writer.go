// Package excel exports the processed tables as a workbook for the report
// package.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"mpf/domain/accuracy"
	"mpf/domain/table"
	"mpf/internal/errors"
)

const (
	sheetAdmin    = "Admin"
	sheetFootwear = "Footwear"
	sheetAccuracy = "Accuracy"
)

// WriteWorkbook writes the admin table, footwear table, and accuracy
// summaries to an xlsx file, one sheet each.
func WriteWorkbook(path string, admin, footwear *table.Frame, entries []accuracy.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeFrame(f, sheetAdmin, admin); err != nil {
		return err
	}
	if err := writeFrame(f, sheetFootwear, footwear); err != nil {
		return err
	}
	if err := writeAccuracy(f, entries); err != nil {
		return err
	}

	// Drop the default sheet created by excelize.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.StorageError("removing default sheet", err)
	}
	if idx, err := f.GetSheetIndex(sheetAdmin); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.StorageError("saving workbook", err)
	}
	return nil
}

func writeFrame(f *excelize.File, sheet string, frame *table.Frame) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.StorageError("creating sheet "+sheet, err)
	}

	for j, col := range frame.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return errors.StorageError("addressing header cell", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return errors.StorageError("writing header cell", err)
		}
	}

	for i := 0; i < frame.NumRows(); i++ {
		for j := range frame.Columns {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return errors.StorageError("addressing data cell", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(frame.Rows[i][j])); err != nil {
				return errors.StorageError("writing data cell", err)
			}
		}
	}
	return nil
}

func writeAccuracy(f *excelize.File, entries []accuracy.Entry) error {
	if _, err := f.NewSheet(sheetAccuracy); err != nil {
		return errors.StorageError("creating sheet "+sheetAccuracy, err)
	}

	headers := []string{"Metric", "Report", "Correct", "Incorrect"}
	for j, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(j+1, 1)
		if err := f.SetCellValue(sheetAccuracy, cell, h); err != nil {
			return errors.StorageError("writing accuracy header", err)
		}
	}

	for i, e := range entries {
		values := []interface{}{e.Metric, string(e.Report), e.Correct, e.Incorrect}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return errors.StorageError("addressing accuracy cell", err)
			}
			if err := f.SetCellValue(sheetAccuracy, cell, v); err != nil {
				return errors.StorageError(fmt.Sprintf("writing accuracy row %d", i), err)
			}
		}
	}
	return nil
}

// cellValue maps a table value to a native spreadsheet value; missing cells
// stay blank.
func cellValue(v table.Value) interface{} {
	if v.IsMissing() {
		return ""
	}
	if n, ok := v.AsInt(); ok {
		return n
	}
	if f, ok := v.AsFloat(); ok {
		return f
	}
	if t, ok := v.AsTime(); ok {
		return t
	}
	return v.String()
}
