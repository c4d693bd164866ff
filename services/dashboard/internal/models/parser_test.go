package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/workbook"
)

var testHeader = []string{
	ColJobID, ColJobTitle, ColSalaryUSD, ColExperienceLevel, ColEmploymentType,
	ColCompanySize, ColEmployeeResidence, ColRemoteRatio, ColRequiredSkills,
	ColYearsExperience, ColIndustry, ColPostingDate, ColDeadline,
	ColDescriptionLength, ColBenefitsScore,
}

func TestParseJobRecords(t *testing.T) {
	table := workbook.Table{
		Header: testHeader,
		Rows: [][]string{
			{"AI00001", "Data Scientist", "90376", "SE", "FT", "L", "South Korea", "50", "Python, SQL", "7", "Finance", "45292", "45322", "1500", "7.6"},
			{"AI00002", "ML Engineer", "", "EN", "PT", "S", "South Korea", "0", "", "1", "Retail", "2024-02-10", "", "800"},
			{"AI00003", "ML Engineer", "61000", "MI", "FT", "M", "South Korea", "100", "Go", "3", "Retail", "2024-03-01", "", " ", "5"},
		},
	}

	records, err := ParseJobRecords(table)
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "AI00001", first.JobID)
	assert.Equal(t, 90376.0, first.SalaryUSD)
	assert.Equal(t, 50, first.RemoteRatio)
	assert.Equal(t, 7, first.YearsExperience)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.PostingDate)
	require.NotNil(t, first.Deadline)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *first.Deadline)
	require.NotNil(t, first.RequiredSkills)
	assert.Equal(t, "Python, SQL", *first.RequiredSkills)
	assert.Equal(t, 7.6, first.BenefitsScore)
	assert.Equal(t, 1500.0, first.DescriptionLength)
	assert.True(t, first.HasSalary())

	second := records[1]
	assert.True(t, math.IsNaN(second.SalaryUSD))
	assert.False(t, second.HasSalary())
	assert.Nil(t, second.Deadline)
	assert.Nil(t, second.RequiredSkills)
	assert.False(t, second.HasBenefits(), "short row leaves benefits absent")
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), second.PostingDate)
	assert.Equal(t, 800.0, second.DescriptionLength)

	third := records[2]
	assert.False(t, third.HasDescriptionLength(), "blank length is absent, not zero")
	assert.True(t, math.IsNaN(third.DescriptionLength))
}

func TestParseJobRecords_MissingColumn(t *testing.T) {
	table := workbook.Table{Header: []string{ColJobID, ColJobTitle}}

	_, err := ParseJobRecords(table)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeInvalidInput))
	assert.Contains(t, err.Error(), ColIndustry)
}

func TestParseJobRecords_MalformedCell(t *testing.T) {
	table := workbook.Table{
		Header: testHeader,
		Rows: [][]string{
			{"AI00001", "Data Scientist", "90376", "SE", "FT", "L", "South Korea", "half", "", "7", "Finance", "45292"},
		},
	}

	_, err := ParseJobRecords(table)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeInvalidInput))
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), ColRemoteRatio)
}

func TestRecordUUID(t *testing.T) {
	assert.Equal(t, RecordUUID("AI00001"), RecordUUID("AI00001"))
	assert.NotEqual(t, RecordUUID("AI00001"), RecordUUID("AI00002"))
}

func TestTypedCell(t *testing.T) {
	assert.Nil(t, TypedCell(ColBenefitsScore, " "))
	assert.Equal(t, 7.5, TypedCell(ColBenefitsScore, "7.5"))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TypedCell(ColPostingDate, "45292"))
	assert.Equal(t, "45292", TypedCell(ColJobID, "45292"))
	assert.Equal(t, "n/a", TypedCell(ColSalaryUSD, "n/a"))
}
