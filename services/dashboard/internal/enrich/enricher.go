// Package enrich derives the dashboard columns of each job posting and
// explodes its skills into a long-format table.
//
// Every derivation is a pure function of one record and the run's reference
// time, so output does not depend on row order or on other rows.
package enrich

import (
	"strings"
	"time"

	"aijobs/services/dashboard/internal/models"
)

// Result holds the two tables produced from one filtered table.
type Result struct {
	Jobs   []models.EnrichedJobRecord
	Skills []models.SkillAssociation
}

// Enrich derives one enriched record per input record, in input order, and
// the skill associations of every record that has a skills value. now is the
// reference time for the active flag.
func Enrich(records []models.JobRecord, now time.Time) Result {
	result := Result{
		Jobs:   make([]models.EnrichedJobRecord, 0, len(records)),
		Skills: make([]models.SkillAssociation, 0),
	}
	for _, record := range records {
		enriched := EnrichRecord(record, now)
		result.Jobs = append(result.Jobs, enriched)
		result.Skills = append(result.Skills, ExplodeSkills(record)...)
	}
	return result
}

// EnrichRecord applies every derivation rule to one record.
func EnrichRecord(record models.JobRecord, now time.Time) models.EnrichedJobRecord {
	posted := record.PostingDate
	return models.EnrichedJobRecord{
		JobRecord:           record,
		PostingYear:         posted.Year(),
		PostingMonth:        int(posted.Month()),
		PostingQuarter:      Quarter(posted),
		PostingYearMonth:    YearMonth(posted),
		IsActive:            IsActive(record.Deadline, now),
		RemoteCategory:      RemoteCategory(record.RemoteRatio),
		SalaryRange:         SalaryRange(record.SalaryUSD),
		ExperienceCategory:  ExperienceCategory(record.YearsExperience),
		ExperienceLevelFull: ExperienceLevelFull(record.ExperienceLevel),
		BenefitsCategory:    BenefitsCategory(record.BenefitsScore),
	}
}

func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// YearMonth truncates t to its month, rendered as YYYY-MM.
func YearMonth(t time.Time) string {
	return t.Format("2006-01")
}

// IsActive reports whether a posting still accepts applications at now. A
// posting without a deadline is inactive. Deadlines carry no zone, so both
// sides are compared by their wall clock.
func IsActive(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return false
	}
	return !WallClock(*deadline).Before(WallClock(now))
}

// WallClock returns t's local date and time reinterpreted in UTC.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// SplitSkills splits a skills value on commas and trims each token. Empty
// tokens are kept.
func SplitSkills(skills string) []string {
	tokens := strings.Split(skills, ",")
	for i, token := range tokens {
		tokens[i] = strings.TrimSpace(token)
	}
	return tokens
}

// ExplodeSkills emits one association per skill token of record. Records
// without a skills value emit none.
func ExplodeSkills(record models.JobRecord) []models.SkillAssociation {
	if record.RequiredSkills == nil {
		return nil
	}
	tokens := SplitSkills(*record.RequiredSkills)
	associations := make([]models.SkillAssociation, 0, len(tokens))
	for _, skill := range tokens {
		associations = append(associations, models.SkillAssociation{
			JobID:           record.JobID,
			Skill:           skill,
			JobTitle:        record.JobTitle,
			SalaryUSD:       record.SalaryUSD,
			ExperienceLevel: record.ExperienceLevel,
			Industry:        record.Industry,
			CompanySize:     record.CompanySize,
		})
	}
	return associations
}
