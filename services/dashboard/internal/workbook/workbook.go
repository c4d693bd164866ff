// Package workbook reads and writes the .xlsx artifacts of a dashboard run.
//
// Input sheets are exposed as a header plus raw string rows; callers decide how
// to type each column. Output sheets carry typed values so numbers and dates
// land in the workbook as numbers and dates.
package workbook

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"aijobs/services/dashboard/internal/errors"
)

const Extension = ".xlsx"

// Table is the first sheet of an input workbook.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of column in the header, or -1.
func (t Table) Index(column string) int {
	for i, name := range t.Header {
		if name == column {
			return i
		}
	}
	return -1
}

// Cell returns the raw value of column idx in row, treating short rows as
// trailing empty cells.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Sheet is one named output sheet.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// ValidatePath fails fast when path does not name an .xlsx workbook.
func ValidatePath(path string) error {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return errors.InvalidFormat(fmt.Sprintf("input file must be an %s file: %s", Extension, path), nil)
	}
	return nil
}

// Read loads the first sheet of the workbook at path. Cells are read raw, so
// dates come back as Excel serial numbers.
func Read(path string) (Table, error) {
	if err := ValidatePath(path); err != nil {
		return Table{}, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, errors.Internal(fmt.Sprintf("open workbook %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.InvalidInput(fmt.Sprintf("workbook %s has no sheets", path), nil)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, errors.Internal(fmt.Sprintf("read sheet %s of %s", sheets[0], path), err)
	}
	if len(rows) == 0 {
		return Table{}, errors.InvalidInput(fmt.Sprintf("workbook %s has no header row", path), nil)
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	return Table{Header: header, Rows: rows[1:]}, nil
}

// Write saves sheets, in order, into a new workbook at path.
func Write(path string, sheets ...Sheet) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if len(sheets) == 0 {
		return errors.InvalidInput("no sheets to write", nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet.Name)
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return errors.Internal(fmt.Sprintf("create sheet %s", sheet.Name), err)
		}

		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return errors.Internal(fmt.Sprintf("save workbook %s", path), err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	header := make([]any, len(sheet.Columns))
	for i, name := range sheet.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return errors.Internal(fmt.Sprintf("write header of sheet %s", sheet.Name), err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Internal("resolve cell name", err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return errors.Internal(fmt.Sprintf("write row %d of sheet %s", i+1, sheet.Name), err)
		}
	}
	return nil
}

// cellValue maps missing values to empty cells.
func cellValue(v any) any {
	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil
		}
	case *time.Time:
		if value == nil {
			return nil
		}
		return *value
	case *string:
		if value == nil {
			return nil
		}
		return *value
	}
	return v
}

// SerialToTime converts a raw date cell, either an Excel serial number or an
// ISO-like date string, into a time.
func SerialToTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", "2006-01-02T15:04:05Z07:00", "2006/01/02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
