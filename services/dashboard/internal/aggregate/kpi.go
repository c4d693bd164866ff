package aggregate

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"aijobs/services/dashboard/internal/models"
)

type KPI = models.KPI

var printer = message.NewPrinter(language.English)

// NotAvailable stands in for a statistic with no input values.
const NotAvailable = "n/a"

// Money formats v as "$1,234.56".
func Money(v float64) string {
	if math.IsNaN(v) {
		return NotAvailable
	}
	return printer.Sprintf("$%.2f", v)
}

// WholeMoney formats v as "$1,234", keeping decimals only when v has them.
func WholeMoney(v float64) string {
	if math.IsNaN(v) {
		return NotAvailable
	}
	if v == math.Trunc(v) {
		return printer.Sprintf("$%d", int64(v))
	}
	return printer.Sprintf("$%v", v)
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	if math.IsNaN(v) {
		return NotAvailable
	}
	return printer.Sprintf("%.1f%%", v)
}

// Decimal formats v with the given number of decimals.
func Decimal(v float64, decimals int) string {
	if math.IsNaN(v) {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Share is part/total as a percentage, NaN for an empty total.
func Share(part, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	return float64(part) / float64(total) * 100
}

// KPIs computes the fixed headline metrics in display order.
func KPIs(jobs []models.EnrichedJobRecord, skills []models.SkillAssociation) []KPI {
	active, remote := 0, 0
	years := make([]float64, len(jobs))
	titles := make([]string, len(jobs))
	industries := make([]string, len(jobs))
	for i, job := range jobs {
		if job.IsActive {
			active++
		}
		if job.RemoteRatio > 0 {
			remote++
		}
		years[i] = float64(job.YearsExperience)
		titles[i] = job.JobTitle
		industries[i] = job.Industry
	}
	skillNames := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillNames[s.Skill] = struct{}{}
	}

	salary := Describe(salaries(jobs))
	return []KPI{
		{Name: "Total Jobs", Value: len(jobs)},
		{Name: "Active Jobs", Value: active},
		{Name: "Average Salary (USD)", Value: Money(salary.Mean)},
		{Name: "Median Salary (USD)", Value: Money(salary.Median)},
		{Name: "Min Salary (USD)", Value: WholeMoney(salary.Min)},
		{Name: "Max Salary (USD)", Value: WholeMoney(salary.Max)},
		{Name: "Remote Jobs %", Value: Percent(Share(remote, len(jobs)))},
		{Name: "Avg Years Experience", Value: Decimal(Mean(years), 1)},
		{Name: "Avg Benefits Score", Value: Decimal(Mean(benefits(jobs)), 2)},
		{Name: "Unique Job Titles", Value: distinct(titles)},
		{Name: "Unique Industries", Value: distinct(industries)},
		{Name: "Unique Skills", Value: len(skillNames)},
	}
}
