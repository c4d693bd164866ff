// Package aggregate computes the dashboard's summary tables from the
// enriched fact table and the skills association table.
//
// Grouping follows the warehouse conventions of the dashboard: groups are
// formed on non-empty keys, ordered by key ascending, and then stably re-sorted
// by the table's ordering column where one exists. Missing values are skipped
// by every statistic and sort last.
package aggregate

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ecodeclub/ekit/slice"

	"aijobs/services/dashboard/internal/models"
)

// CountRow is a group's row count and mean salary.
type CountRow struct {
	Key       string
	Count     int
	AvgSalary float64
}

// SalaryRow is a group's salary distribution. Stats.Count counts salaries,
// not rows.
type SalaryRow struct {
	Key string
	Stats
}

// BenefitsRow is a group's mean benefits score and row count.
type BenefitsRow struct {
	Key         string
	AvgBenefits float64
	Count       int
}

// ValueRow is a key with a single statistic.
type ValueRow struct {
	Key   string
	Value float64
}

func countRows(groups []group[models.EnrichedJobRecord]) []CountRow {
	rows := make([]CountRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, CountRow{Key: g.key, Count: withJobID(g.rows, jobID), AvgSalary: Mean(salaries(g.rows))})
	}
	return rows
}

func byCountDesc(rows []CountRow) {
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Count > rows[b].Count })
}

// Limit keeps the first n rows. A non-positive n keeps every row.
func Limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

// JobsOverTime counts jobs per posting month, oldest first.
func JobsOverTime(jobs []models.EnrichedJobRecord) []CountRow {
	return countRows(groupBy(jobs, func(j models.EnrichedJobRecord) (string, bool) {
		return present(j.PostingYearMonth)
	}))
}

// JobsByRole counts jobs per title, most frequent first. A positive n keeps
// only the first n rows.
func JobsByRole(jobs []models.EnrichedJobRecord, n int) []CountRow {
	rows := countRows(groupBy(jobs, func(j models.EnrichedJobRecord) (string, bool) {
		return present(j.JobTitle)
	}))
	byCountDesc(rows)
	return Limit(rows, n)
}

// JobsByIndustry counts jobs per industry, most frequent first.
func JobsByIndustry(jobs []models.EnrichedJobRecord) []CountRow {
	rows := countRows(groupBy(jobs, func(j models.EnrichedJobRecord) (string, bool) {
		return present(j.Industry)
	}))
	byCountDesc(rows)
	return rows
}

func salaryRows(groups []group[models.EnrichedJobRecord]) []SalaryRow {
	rows := make([]SalaryRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, SalaryRow{Key: g.key, Stats: Describe(salaries(g.rows))})
	}
	return rows
}

// SalaryByExperience describes salaries per full experience level name.
func SalaryByExperience(jobs []models.EnrichedJobRecord) []SalaryRow {
	return salaryRows(groupBy(jobs, func(j models.EnrichedJobRecord) (string, bool) {
		return present(j.ExperienceLevelFull)
	}))
}

// SalaryByRemote describes salaries per remote category.
func SalaryByRemote(jobs []models.EnrichedJobRecord) []SalaryRow {
	return salaryRows(groupBy(jobs, func(j models.EnrichedJobRecord) (string, bool) {
		return present(j.RemoteCategory)
	}))
}

// TopSkills counts associations per skill, most demanded first. A positive n
// keeps only the first n rows. The empty skill is a skill like any other.
func TopSkills(skills []models.SkillAssociation, n int) []CountRow {
	groups := groupBy(skills, func(s models.SkillAssociation) (string, bool) {
		return s.Skill, true
	})
	rows := make([]CountRow, 0, len(groups))
	for _, g := range groups {
		values := make([]float64, len(g.rows))
		for i, s := range g.rows {
			values[i] = s.SalaryUSD
		}
		count := withJobID(g.rows, func(s models.SkillAssociation) string { return s.JobID })
		rows = append(rows, CountRow{Key: g.key, Count: count, AvgSalary: Mean(values)})
	}
	byCountDesc(rows)
	return Limit(rows, n)
}

// BenefitsByEmployment averages benefits scores per employment type, best
// first.
func BenefitsByEmployment(jobs []models.EnrichedJobRecord) []BenefitsRow {
	groups := groupBy(jobs, func(j models.EnrichedJobRecord) (string, bool) {
		return present(j.EmploymentType)
	})
	rows := make([]BenefitsRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, BenefitsRow{Key: g.key, AvgBenefits: Mean(benefits(g.rows)), Count: withJobID(g.rows, jobID)})
	}
	sort.SliceStable(rows, func(a, b int) bool { return descending(rows[a].AvgBenefits, rows[b].AvgBenefits) })
	return rows
}

// MeanSalaryBy averages salaries per key, ordered by key ascending.
func MeanSalaryBy(jobs []models.EnrichedJobRecord, key func(models.EnrichedJobRecord) string) []ValueRow {
	groups := groupBy(jobs, func(j models.EnrichedJobRecord) (string, bool) {
		return present(key(j))
	})
	rows := make([]ValueRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, ValueRow{Key: g.key, Value: Mean(salaries(g.rows))})
	}
	return rows
}

// TopBySalary orders rows by value descending and keeps the first n.
func TopBySalary(rows []ValueRow, n int) []ValueRow {
	sorted := append([]ValueRow(nil), rows...)
	sort.SliceStable(sorted, func(a, b int) bool { return descending(sorted[a].Value, sorted[b].Value) })
	return Limit(sorted, n)
}

// SalaryByRemoteRatio averages salaries per raw remote ratio, in numeric
// order.
func SalaryByRemoteRatio(jobs []models.EnrichedJobRecord) []ValueRow {
	rows := MeanSalaryBy(jobs, func(j models.EnrichedJobRecord) string {
		return strconv.Itoa(j.RemoteRatio)
	})
	sort.SliceStable(rows, func(a, b int) bool {
		x, _ := strconv.Atoi(rows[a].Key)
		y, _ := strconv.Atoi(rows[b].Key)
		return x < y
	})
	return rows
}

// SkillSalaryPremium is, per skill, the mean salary of jobs whose skills text
// contains the skill. Matching is a case-insensitive substring test, so "R"
// also matches "PyTorch". Jobs without skills never match, and a skill no job
// matches gets no row. Rows are ordered by mean salary descending.
func SkillSalaryPremium(jobs []models.EnrichedJobRecord, skills []string) []ValueRow {
	rows := make([]ValueRow, 0, len(skills))
	for _, skill := range skills {
		needle := strings.ToLower(skill)
		var matched []float64
		for _, job := range jobs {
			if job.RequiredSkills == nil {
				continue
			}
			if strings.Contains(strings.ToLower(*job.RequiredSkills), needle) {
				matched = append(matched, job.SalaryUSD)
			}
		}
		if len(matched) == 0 {
			continue
		}
		rows = append(rows, ValueRow{Key: skill, Value: Mean(matched)})
	}
	sort.SliceStable(rows, func(a, b int) bool { return descending(rows[a].Value, rows[b].Value) })
	return rows
}

// Keys returns the keys of rows in order.
func Keys(rows []CountRow) []string {
	return slice.Map(rows, func(_ int, r CountRow) string { return r.Key })
}

// SeniorPremium is the mean salary of SE jobs minus that of EN jobs. ok is
// false when either level has no mean salary.
func SeniorPremium(byLevel []ValueRow) (premium float64, ok bool) {
	senior, entry := math.NaN(), math.NaN()
	for _, row := range byLevel {
		switch row.Key {
		case "SE":
			senior = row.Value
		case "EN":
			entry = row.Value
		}
	}
	if math.IsNaN(senior) || math.IsNaN(entry) {
		return 0, false
	}
	return senior - entry, true
}
