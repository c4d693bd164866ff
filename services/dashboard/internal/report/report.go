// Package report renders the three page console dashboard guide.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"aijobs/services/dashboard/internal/aggregate"
	"aijobs/services/dashboard/internal/models"
)

const (
	ruleWidth     = 80
	topIndustries = 10
)

type Options struct {
	Title               string
	TopRoles            int
	TopSkills           int
	TopRolesBySalary    int
	HighQualityBenefits float64
}

// top titles a list limited to n rows.
func top(n int) string {
	if n <= 0 {
		return "All"
	}
	return fmt.Sprintf("Top %d", n)
}

// writer remembers the first write error so rendering reads straight through.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) header(title string) {
	rule := strings.Repeat("=", ruleWidth)
	w.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

func (w *writer) section(title string) {
	w.printf("\n%s\n", title)
}

func (w *writer) countRows(rows []aggregate.CountRow) {
	if len(rows) == 0 {
		w.printf("  %s\n", aggregate.NotAvailable)
		return
	}
	for _, row := range rows {
		w.printf("  %-40s %d\n", label(row.Key), row.Count)
	}
}

func (w *writer) moneyRows(rows []aggregate.ValueRow) {
	if len(rows) == 0 {
		w.printf("  %s\n", aggregate.NotAvailable)
		return
	}
	for _, row := range rows {
		w.printf("  %-40s %s\n", label(row.Key), aggregate.Money(row.Value))
	}
}

func label(key string) string {
	if key == "" {
		return `""`
	}
	return key
}

// Render writes the report for jobs and skills to out.
func Render(out io.Writer, jobs []models.EnrichedJobRecord, skills []models.SkillAssociation, opts Options) error {
	w := &writer{w: out}

	rule := strings.Repeat("=", ruleWidth)
	w.printf("%s\nDASHBOARD IMPLEMENTATION GUIDE FOR %s\n%s\n", rule, strings.ToUpper(opts.Title), rule)

	executiveOverview(w, jobs, skills, opts)
	salaryAndExperience(w, jobs, opts)
	skillsAndQuality(w, jobs, skills, opts)

	w.printf("\n%s\nAnalysis complete.\n%s\n", rule, rule)
	return w.err
}

func executiveOverview(w *writer, jobs []models.EnrichedJobRecord, skills []models.SkillAssociation, opts Options) {
	w.header("PAGE 1 - EXECUTIVE OVERVIEW")

	kpis := aggregate.KPIs(jobs, skills)
	value := func(name string) any {
		for _, kpi := range kpis {
			if kpi.Name == name {
				return kpi.Value
			}
		}
		return aggregate.NotAvailable
	}

	w.section("KEY KPIs:")
	w.printf("  - Total AI Jobs: %v\n", value("Total Jobs"))
	w.printf("  - Active Job Openings: %v\n", value("Active Jobs"))
	w.printf("  - Average Salary (USD): %v\n", value("Average Salary (USD)"))
	w.printf("  - Remote Jobs %%: %v\n", value("Remote Jobs %"))
	w.printf("  - Avg Required Experience: %v years\n", value("Avg Years Experience"))

	w.section("VISUAL 1: AI Job Postings Over Time")
	w.printf("  - Data points: %d months\n", len(aggregate.JobsOverTime(jobs)))
	first, last, ok := postingRange(jobs)
	if ok {
		w.printf("  - Date range: %s to %s\n", first.Format(time.DateOnly), last.Format(time.DateOnly))
	} else {
		w.printf("  - Date range: %s\n", aggregate.NotAvailable)
	}

	w.section("VISUAL 2: Jobs by Role ("+top(opts.TopRoles)+")")
	w.countRows(aggregate.JobsByRole(jobs, opts.TopRoles))

	industries := aggregate.JobsByIndustry(jobs)
	w.section("VISUAL 3: Jobs by Industry")
	w.countRows(aggregate.Limit(industries, topIndustries))
	w.printf("  - Total industries: %d\n", len(industries))
}

func salaryAndExperience(w *writer, jobs []models.EnrichedJobRecord, opts Options) {
	w.header("PAGE 2 - SALARY & EXPERIENCE INSIGHTS")

	salary := aggregate.Describe(salaryValues(jobs))
	byLevel := aggregate.MeanSalaryBy(jobs, func(j models.EnrichedJobRecord) string { return j.ExperienceLevel })

	w.section("KEY KPIs:")
	w.printf("  - Median Salary (USD): %s\n", aggregate.Money(salary.Median))
	w.printf("  - Salary Range: %s - %s\n", aggregate.WholeMoney(salary.Min), aggregate.WholeMoney(salary.Max))
	w.printf("  - Salary by Experience Level:\n")
	for _, row := range byLevel {
		w.printf("      - %s: %s\n", row.Key, aggregate.Money(row.Value))
	}
	if premium, ok := aggregate.SeniorPremium(byLevel); ok {
		w.printf("  - Senior Salary Premium: %s\n", aggregate.Money(premium))
	}

	byRole := aggregate.MeanSalaryBy(jobs, func(j models.EnrichedJobRecord) string { return j.JobTitle })
	w.section("VISUAL 1: Salary by Job Role ("+top(opts.TopRolesBySalary)+")")
	w.moneyRows(aggregate.TopBySalary(byRole, opts.TopRolesBySalary))

	w.section("VISUAL 2: Salary by Experience Level")
	w.moneyRows(aggregate.TopBySalary(byLevel, 0))

	w.section("VISUAL 3: Salary vs Years of Experience")
	w.printf("  - Data points: %d jobs\n", len(jobs))
	if low, high, ok := experienceRange(jobs); ok {
		w.printf("  - Experience range: %d - %d years\n", low, high)
	} else {
		w.printf("  - Experience range: %s\n", aggregate.NotAvailable)
	}
	w.printf("  - Company sizes available: %s\n", strings.Join(companySizes(jobs), ", "))

	w.section("VISUAL 4: Remote vs Onsite Salary")
	w.moneyRows(aggregate.SalaryByRemoteRatio(jobs))
}

func skillsAndQuality(w *writer, jobs []models.EnrichedJobRecord, skills []models.SkillAssociation, opts Options) {
	w.header("PAGE 3 - SKILLS, QUALITY & JOB ATTRACTIVENESS")

	allSkills := aggregate.TopSkills(skills, 0)
	highQuality := 0
	for _, job := range jobs {
		if job.HasBenefits() && job.BenefitsScore >= opts.HighQualityBenefits {
			highQuality++
		}
	}

	w.section("KEY KPIs:")
	w.printf("  - Total Unique Skills: %d\n", len(allSkills))
	if len(allSkills) > 0 {
		w.printf("  - Most Demanded Skill: %s (%d jobs)\n", label(allSkills[0].Key), allSkills[0].Count)
	} else {
		w.printf("  - Most Demanded Skill: %s\n", aggregate.NotAvailable)
	}
	w.printf("  - Avg Benefits Score: %s\n", aggregate.Decimal(aggregate.Mean(benefitValues(jobs)), 2))
	w.printf("  - High-Quality Jobs %% (score >= %.1f): %s\n",
		opts.HighQualityBenefits, aggregate.Percent(aggregate.Share(highQuality, len(jobs))))

	leading := aggregate.Limit(allSkills, opts.TopSkills)
	w.section("VISUAL 1: "+top(opts.TopSkills)+" Required Skills")
	w.countRows(leading)

	w.section("VISUAL 2: Skill vs Salary Premium ("+top(opts.TopSkills)+" Skills)")
	w.moneyRows(aggregate.SkillSalaryPremium(jobs, aggregate.Keys(leading)))

	w.section("VISUAL 3: Job Description Length vs Salary")
	lengths := make([]float64, len(jobs))
	for i, job := range jobs {
		lengths[i] = job.DescriptionLength
	}
	length := aggregate.Describe(lengths)
	if length.Count > 0 {
		w.printf("  - Description length range: %d - %d chars\n", int(length.Min), int(length.Max))
	} else {
		w.printf("  - Description length range: %s\n", aggregate.NotAvailable)
	}
	w.printf("  - Correlation: %s\n", aggregate.Decimal(aggregate.Correlation(lengths, salaryValues(jobs)), 3))

	w.section("VISUAL 4: Benefits Score by Employment Type")
	rows := aggregate.BenefitsByEmployment(jobs)
	if len(rows) == 0 {
		w.printf("  %s\n", aggregate.NotAvailable)
	}
	for _, row := range rows {
		w.printf("  %-40s %s\n", row.Key, aggregate.Decimal(row.AvgBenefits, 2))
	}
}

func salaryValues(jobs []models.EnrichedJobRecord) []float64 {
	values := make([]float64, len(jobs))
	for i, job := range jobs {
		values[i] = job.SalaryUSD
	}
	return values
}

func benefitValues(jobs []models.EnrichedJobRecord) []float64 {
	values := make([]float64, len(jobs))
	for i, job := range jobs {
		values[i] = job.BenefitsScore
	}
	return values
}

func postingRange(jobs []models.EnrichedJobRecord) (first, last time.Time, ok bool) {
	for i, job := range jobs {
		if i == 0 || job.PostingDate.Before(first) {
			first = job.PostingDate
		}
		if i == 0 || job.PostingDate.After(last) {
			last = job.PostingDate
		}
	}
	return first, last, len(jobs) > 0
}

func experienceRange(jobs []models.EnrichedJobRecord) (low, high int, ok bool) {
	low, high = math.MaxInt, math.MinInt
	for _, job := range jobs {
		low = min(low, job.YearsExperience)
		high = max(high, job.YearsExperience)
	}
	return low, high, len(jobs) > 0
}

// companySizes lists distinct company sizes in order of first appearance.
func companySizes(jobs []models.EnrichedJobRecord) []string {
	seen := make(map[string]struct{})
	var sizes []string
	for _, job := range jobs {
		if _, ok := seen[job.CompanySize]; ok || job.CompanySize == "" {
			continue
		}
		seen[job.CompanySize] = struct{}{}
		sizes = append(sizes, job.CompanySize)
	}
	return sizes
}
