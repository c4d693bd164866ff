package aggregate

import (
	"github.com/ecodeclub/ekit/slice"

	"aijobs/services/dashboard/internal/models"
	"aijobs/services/dashboard/internal/workbook"
)

// Sheet names of the summary workbook, in write order.
const (
	SheetJobsOverTime         = "Jobs_Over_Time"
	SheetJobsByRole           = "Jobs_By_Role"
	SheetJobsByIndustry       = "Jobs_By_Industry"
	SheetSalaryByExperience   = "Salary_By_Experience"
	SheetSalaryByRemote       = "Salary_By_Remote"
	SheetTopSkills            = "Top_Skills"
	SheetBenefitsByEmployment = "Benefits_By_Employment"
	SheetKPIs                 = "KPIs"
)

func countSheet(name, key string, rows []CountRow) workbook.Sheet {
	return workbook.Sheet{
		Name:    name,
		Columns: []string{key, "job_count", "avg_salary"},
		Rows: slice.Map(rows, func(_ int, r CountRow) []any {
			return []any{r.Key, r.Count, r.AvgSalary}
		}),
	}
}

// Sheets builds every summary sheet in write order. Ranked sheets are not
// truncated.
func Sheets(jobs []models.EnrichedJobRecord, skills []models.SkillAssociation) []workbook.Sheet {
	return []workbook.Sheet{
		countSheet(SheetJobsOverTime, "year_month", JobsOverTime(jobs)),
		countSheet(SheetJobsByRole, "job_title", JobsByRole(jobs, 0)),
		countSheet(SheetJobsByIndustry, "industry", JobsByIndustry(jobs)),
		{
			Name:    SheetSalaryByExperience,
			Columns: []string{"experience_level", "avg_salary", "median_salary", "min_salary", "max_salary", "job_count"},
			Rows: slice.Map(SalaryByExperience(jobs), func(_ int, r SalaryRow) []any {
				return []any{r.Key, r.Mean, r.Median, r.Min, r.Max, r.Count}
			}),
		},
		{
			Name:    SheetSalaryByRemote,
			Columns: []string{"remote_category", "avg_salary", "median_salary", "job_count"},
			Rows: slice.Map(SalaryByRemote(jobs), func(_ int, r SalaryRow) []any {
				return []any{r.Key, r.Mean, r.Median, r.Count}
			}),
		},
		countSheet(SheetTopSkills, "skill", TopSkills(skills, 0)),
		{
			Name:    SheetBenefitsByEmployment,
			Columns: []string{"employment_type", "avg_benefits_score", "job_count"},
			Rows: slice.Map(BenefitsByEmployment(jobs), func(_ int, r BenefitsRow) []any {
				return []any{r.Key, r.AvgBenefits, r.Count}
			}),
		},
		{
			Name:    SheetKPIs,
			Columns: []string{"KPI", "Value"},
			Rows: slice.Map(KPIs(jobs, skills), func(_ int, k KPI) []any {
				return []any{k.Name, k.Value}
			}),
		},
	}
}
