package excel

import (
	"github.com/bedwards/wdi-go/domain/frame"
	"github.com/bedwards/wdi-go/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Sheet pairs a worksheet name with the frame written to it.
type Sheet struct {
	Name  string
	Frame *frame.Frame
}

// WriteFrame writes a single frame to an .xlsx workbook with a header
// row followed by the data rows.
func WriteFrame(f *frame.Frame, path, sheetName string) error {
	return WriteSheets(path, []Sheet{{Name: sheetName, Frame: f}})
}

// WriteSheets writes one workbook with a worksheet per frame. Cells
// keep their in-memory types so numbers stay numeric in the workbook.
func WriteSheets(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return errors.InvalidInput("at least one sheet is required")
	}

	book := excelize.NewFile()
	defer book.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := book.SetSheetName("Sheet1", sheet.Name); err != nil {
				return errors.Wrapf(err, "failed to name sheet %s", sheet.Name)
			}
		} else {
			if _, err := book.NewSheet(sheet.Name); err != nil {
				return errors.Wrapf(err, "failed to add sheet %s", sheet.Name)
			}
		}
		if err := writeSheet(book, sheet.Name, sheet.Frame); err != nil {
			return err
		}
	}

	if err := book.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook %s", path)
	}
	return nil
}

func writeSheet(book *excelize.File, name string, f *frame.Frame) error {
	for j, col := range f.Columns() {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return errors.Wrap(err, "invalid header coordinates")
		}
		if err := book.SetCellValue(name, cell, col); err != nil {
			return errors.Wrapf(err, "failed to write header %s", col)
		}
	}

	cols := f.Columns()
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		for j, col := range cols {
			value := row.Value(col)
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return errors.Wrap(err, "invalid cell coordinates")
			}
			if err := book.SetCellValue(name, cell, value); err != nil {
				return errors.Wrapf(err, "failed to write cell %s!%s", name, cell)
			}
		}
	}
	return nil
}
