package workbook

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aijobs/services/dashboard/internal/errors"
)

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath("jobs.xlsx"))
	assert.NoError(t, ValidatePath("/data/JOBS.XLSX"))

	for _, path := range []string{"jobs.csv", "jobs.xls", "jobs", "jobs.xlsx.bak"} {
		err := ValidatePath(path)
		require.Error(t, err, path)
		assert.True(t, errors.IsType(err, errors.ErrTypeInvalidFormat), path)
	}
}

func TestRead_RejectsWrongExtensionBeforeOpening(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeInvalidFormat))
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")
	posted := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	err := Write(path,
		Sheet{
			Name:    "Jobs",
			Columns: []string{"job_id", "salary_usd", "posting_date", "benefits_score"},
			Rows: [][]any{
				{"AI00001", 90000.0, posted, 7.5},
				{"AI00002", 120000.0, posted, math.NaN()},
			},
		},
		Sheet{
			Name:    "KPIs",
			Columns: []string{"KPI", "Value"},
			Rows:    [][]any{{"Total Jobs", 2}},
		},
	)
	require.NoError(t, err)

	table, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"job_id", "salary_usd", "posting_date", "benefits_score"}, table.Header)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "AI00001", table.Rows[0][0])
	assert.Equal(t, "90000", table.Rows[0][1])
	assert.Equal(t, "7.5", table.Rows[0][3])
	assert.Equal(t, "", Cell(table.Rows[1], table.Index("benefits_score")))

	got, err := SerialToTime(Cell(table.Rows[0], table.Index("posting_date")))
	require.NoError(t, err)
	assert.Equal(t, posted, got)
}

func TestTable_IndexAndCell(t *testing.T) {
	table := Table{Header: []string{"a", "b"}, Rows: [][]string{{"1"}}}

	assert.Equal(t, 1, table.Index("b"))
	assert.Equal(t, -1, table.Index("c"))
	assert.Equal(t, "1", Cell(table.Rows[0], 0))
	assert.Equal(t, "", Cell(table.Rows[0], 1))
	assert.Equal(t, "", Cell(table.Rows[0], -1))
}

func TestSerialToTime(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"45292", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01 00:00:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := SerialToTime(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := SerialToTime("next tuesday")
	assert.Error(t, err)
}
