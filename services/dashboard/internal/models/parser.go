package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/workbook"
)

var recordNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// RecordUUID derives a stable UUID from a job identifier so repeated loads of
// the same posting collapse onto one warehouse row.
func RecordUUID(jobID string) string {
	return uuid.NewSHA1(recordNamespace, []byte(jobID)).String()
}

var requiredColumns = []string{
	ColJobID,
	ColJobTitle,
	ColIndustry,
	ColEmploymentType,
	ColExperienceLevel,
	ColYearsExperience,
	ColSalaryUSD,
	ColRemoteRatio,
	ColCompanySize,
	ColPostingDate,
}

var dateColumns = map[string]bool{
	ColPostingDate: true,
	ColDeadline:    true,
}

var numericColumns = map[string]bool{
	ColSalaryUSD:         true,
	ColRemoteRatio:       true,
	ColYearsExperience:   true,
	ColDescriptionLength: true,
	ColBenefitsScore:     true,
}

// ParseJobRecords types every row of table. A missing required column or an
// unparsable required cell aborts the whole parse; absent optional values
// (deadline, benefits, skills, salary) are kept as absent.
func ParseJobRecords(table workbook.Table) ([]JobRecord, error) {
	for _, column := range requiredColumns {
		if table.Index(column) < 0 {
			return nil, errors.InvalidInput(fmt.Sprintf("missing column %q", column), nil)
		}
	}

	records := make([]JobRecord, 0, table.Len())
	for i, row := range table.Rows {
		record, err := parseRow(table, row)
		if err != nil {
			// +2: one for the header, one for 1-based sheet rows
			return nil, errors.InvalidInput(fmt.Sprintf("row %d", i+2), err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(table workbook.Table, row []string) (JobRecord, error) {
	cell := func(column string) string {
		return strings.TrimSpace(workbook.Cell(row, table.Index(column)))
	}

	record := JobRecord{
		JobID:             cell(ColJobID),
		JobTitle:          cell(ColJobTitle),
		Industry:          cell(ColIndustry),
		EmploymentType:    cell(ColEmploymentType),
		ExperienceLevel:   cell(ColExperienceLevel),
		SalaryCurrency:    cell(ColSalaryCurrency),
		CompanySize:       cell(ColCompanySize),
		CompanyName:       cell(ColCompanyName),
		CompanyLocation:   cell(ColCompanyLocation),
		EmployeeResidence: cell(ColEmployeeResidence),
		Education:         cell(ColEducation),
	}

	var err error
	if record.YearsExperience, err = parseInt(cell(ColYearsExperience)); err != nil {
		return JobRecord{}, fmt.Errorf("%s: %w", ColYearsExperience, err)
	}
	if record.RemoteRatio, err = parseInt(cell(ColRemoteRatio)); err != nil {
		return JobRecord{}, fmt.Errorf("%s: %w", ColRemoteRatio, err)
	}
	if record.SalaryUSD, err = parseOptionalFloat(cell(ColSalaryUSD)); err != nil {
		return JobRecord{}, fmt.Errorf("%s: %w", ColSalaryUSD, err)
	}
	if record.BenefitsScore, err = parseOptionalFloat(cell(ColBenefitsScore)); err != nil {
		return JobRecord{}, fmt.Errorf("%s: %w", ColBenefitsScore, err)
	}
	if record.DescriptionLength, err = parseOptionalFloat(cell(ColDescriptionLength)); err != nil {
		return JobRecord{}, fmt.Errorf("%s: %w", ColDescriptionLength, err)
	}

	if record.PostingDate, err = workbook.SerialToTime(cell(ColPostingDate)); err != nil {
		return JobRecord{}, fmt.Errorf("%s: %w", ColPostingDate, err)
	}
	if raw := cell(ColDeadline); raw != "" {
		deadline, err := workbook.SerialToTime(raw)
		if err != nil {
			return JobRecord{}, fmt.Errorf("%s: %w", ColDeadline, err)
		}
		record.Deadline = &deadline
	}

	// Skills keep their raw spacing; only a blank cell counts as absent.
	if raw := workbook.Cell(row, table.Index(ColRequiredSkills)); strings.TrimSpace(raw) != "" {
		record.RequiredSkills = &raw
	}

	return record, nil
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("value is required")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

func parseOptionalFloat(raw string) (float64, error) {
	if raw == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(raw, 64)
}

// TypedCell converts a raw cell of column into the value written back to a
// workbook: dates as times, numeric columns as numbers, blanks as empty cells.
// Values that do not parse are written back unchanged.
func TypedCell(column, raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if dateColumns[column] {
		if t, err := workbook.SerialToTime(trimmed); err == nil {
			return t
		}
		return raw
	}
	if numericColumns[column] {
		if value, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return value
		}
	}
	return raw
}

// TypedRows converts every cell of table with TypedCell.
func TypedRows(table workbook.Table) [][]any {
	rows := make([][]any, len(table.Rows))
	for i, row := range table.Rows {
		typed := make([]any, len(table.Header))
		for j, column := range table.Header {
			typed[j] = TypedCell(column, workbook.Cell(row, j))
		}
		rows[i] = typed
	}
	return rows
}

