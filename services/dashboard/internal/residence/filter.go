package residence

import (
	"fmt"

	"aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/models"
	"aijobs/services/dashboard/internal/workbook"
)

// Filter returns the rows of table whose employee residence equals target, in
// their original order. No match is not an error: the result is an empty
// table with the same header.
func Filter(table workbook.Table, target string) (workbook.Table, error) {
	idx := table.Index(models.ColEmployeeResidence)
	if idx < 0 {
		return workbook.Table{}, errors.InvalidInput(fmt.Sprintf("missing column %q", models.ColEmployeeResidence), nil)
	}

	filtered := workbook.Table{
		Header: table.Header,
		Rows:   make([][]string, 0),
	}
	for _, row := range table.Rows {
		if workbook.Cell(row, idx) == target {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered, nil
}

// Load validates and reads the source workbook, then filters it to target.
func Load(path, target string) (raw, filtered workbook.Table, err error) {
	if err := workbook.ValidatePath(path); err != nil {
		return workbook.Table{}, workbook.Table{}, err
	}
	raw, err = workbook.Read(path)
	if err != nil {
		return workbook.Table{}, workbook.Table{}, err
	}
	filtered, err = Filter(raw, target)
	if err != nil {
		return workbook.Table{}, workbook.Table{}, err
	}
	return raw, filtered, nil
}
