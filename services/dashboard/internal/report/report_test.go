package report

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aijobs/services/dashboard/internal/enrich"
	"aijobs/services/dashboard/internal/models"
)

var options = Options{
	Title:               "South Korea AI Jobs",
	TopRoles:            10,
	TopSkills:           10,
	TopRolesBySalary:    15,
	HighQualityBenefits: 7.0,
}

func strPtr(s string) *string { return &s }

func jobs() ([]models.EnrichedJobRecord, []models.SkillAssociation) {
	records := []models.JobRecord{
		{
			JobID: "AI1", JobTitle: "ML Engineer", Industry: "Tech", EmploymentType: "FT",
			ExperienceLevel: "SE", YearsExperience: 7, SalaryUSD: 150000, RemoteRatio: 0, CompanySize: "L",
			PostingDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), BenefitsScore: 8.5,
			RequiredSkills: strPtr("Python, SQL"), DescriptionLength: 1500,
		},
		{
			JobID: "AI2", JobTitle: "Data Analyst", Industry: "Finance", EmploymentType: "CT",
			ExperienceLevel: "EN", YearsExperience: 1, SalaryUSD: 50000, RemoteRatio: 100, CompanySize: "S",
			PostingDate: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), BenefitsScore: 5,
			RequiredSkills: strPtr("SQL"), DescriptionLength: 500,
		},
	}
	result := enrich.Enrich(records, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	return result.Jobs, result.Skills
}

func TestRender(t *testing.T) {
	enriched, skills := jobs()
	var out bytes.Buffer

	require.NoError(t, Render(&out, enriched, skills, options))

	text := out.String()
	for _, want := range []string{
		"DASHBOARD IMPLEMENTATION GUIDE FOR SOUTH KOREA AI JOBS",
		"PAGE 1 - EXECUTIVE OVERVIEW",
		"PAGE 2 - SALARY & EXPERIENCE INSIGHTS",
		"PAGE 3 - SKILLS, QUALITY & JOB ATTRACTIVENESS",
		"Total AI Jobs: 2",
		"Average Salary (USD): $100,000.00",
		"Remote Jobs %: 50.0%",
		"Data points: 2 months",
		"Date range: 2024-02-01 to 2024-04-30",
		"Total industries: 2",
		"Salary Range: $50,000 - $150,000",
		"Senior Salary Premium: $100,000.00",
		"Experience range: 1 - 7 years",
		"Company sizes available: L, S",
		"Total Unique Skills: 2",
		"Most Demanded Skill: SQL (2 jobs)",
		"High-Quality Jobs % (score >= 7.0): 50.0%",
		"Description length range: 500 - 1500 chars",
		"Correlation: 1.000",
	} {
		assert.Contains(t, text, want)
	}
	assert.Less(t, bytes.Index(out.Bytes(), []byte("PAGE 1")), bytes.Index(out.Bytes(), []byte("PAGE 2")))
	assert.Less(t, bytes.Index(out.Bytes(), []byte("PAGE 2")), bytes.Index(out.Bytes(), []byte("PAGE 3")))
}

func TestRender_Empty(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, Render(&out, nil, nil, options))

	text := out.String()
	assert.Contains(t, text, "Total AI Jobs: 0")
	assert.Contains(t, text, "Average Salary (USD): n/a")
	assert.Contains(t, text, "Date range: n/a")
	assert.Contains(t, text, "Most Demanded Skill: n/a")
	assert.Contains(t, text, "Correlation: n/a")
	assert.NotContains(t, text, "Senior Salary Premium")
}

func TestRender_MissingSalaries(t *testing.T) {
	enriched, skills := jobs()
	for i := range enriched {
		enriched[i].SalaryUSD = math.NaN()
	}
	var out bytes.Buffer

	require.NoError(t, Render(&out, enriched, skills, options))
	assert.Contains(t, out.String(), "Median Salary (USD): n/a")
}

func TestRender_MissingDescriptionLength(t *testing.T) {
	enriched, skills := jobs()
	enriched[1].DescriptionLength = math.NaN()
	var out bytes.Buffer

	require.NoError(t, Render(&out, enriched, skills, options))

	text := out.String()
	assert.Contains(t, text, "Description length range: 1500 - 1500 chars")
	assert.Contains(t, text, "Correlation: n/a", "one paired value is not enough")
}

func TestRender_NonPositiveLimits(t *testing.T) {
	enriched, skills := jobs()
	opts := options
	opts.TopRoles = 0
	opts.TopSkills = -1
	opts.TopRolesBySalary = -5
	var out bytes.Buffer

	require.NotPanics(t, func() {
		require.NoError(t, Render(&out, enriched, skills, opts))
	})

	text := out.String()
	assert.Contains(t, text, "VISUAL 2: Jobs by Role (All)")
	assert.Contains(t, text, "VISUAL 1: All Required Skills")
	assert.Contains(t, text, "VISUAL 1: Salary by Job Role (All)")
	assert.Contains(t, text, "Python")
	assert.NotContains(t, text, "Top -1")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRender_WriteError(t *testing.T) {
	enriched, skills := jobs()

	err := Render(failingWriter{}, enriched, skills, options)

	assert.EqualError(t, err, "closed")
}
