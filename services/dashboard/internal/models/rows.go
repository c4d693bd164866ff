package models

// FactColumns is the column order of the enriched fact table.
var FactColumns = []string{
	ColJobID,
	ColJobTitle,
	ColSalaryUSD,
	ColSalaryCurrency,
	ColExperienceLevel,
	ColEmploymentType,
	ColCompanyLocation,
	ColCompanySize,
	ColEmployeeResidence,
	ColRemoteRatio,
	ColRequiredSkills,
	ColEducation,
	ColYearsExperience,
	ColIndustry,
	ColPostingDate,
	ColDeadline,
	ColDescriptionLength,
	ColBenefitsScore,
	ColCompanyName,
	"posting_year",
	"posting_month",
	"posting_quarter",
	"posting_year_month",
	"is_active",
	"remote_category",
	"salary_range",
	"experience_category",
	"experience_level_full",
	"benefits_category",
}

// Row renders the record in FactColumns order.
func (e EnrichedJobRecord) Row() []any {
	return []any{
		e.JobID,
		e.JobTitle,
		e.SalaryUSD,
		e.SalaryCurrency,
		e.ExperienceLevel,
		e.EmploymentType,
		e.CompanyLocation,
		e.CompanySize,
		e.EmployeeResidence,
		e.RemoteRatio,
		e.RequiredSkills,
		e.Education,
		e.YearsExperience,
		e.Industry,
		e.PostingDate,
		e.Deadline,
		e.DescriptionLength,
		e.BenefitsScore,
		e.CompanyName,
		e.PostingYear,
		e.PostingMonth,
		e.PostingQuarter,
		e.PostingYearMonth,
		e.IsActive,
		e.RemoteCategory,
		e.SalaryRange,
		e.ExperienceCategory,
		e.ExperienceLevelFull,
		e.BenefitsCategory,
	}
}

// SkillColumns is the column order of the long-format skills table.
var SkillColumns = []string{
	ColJobID,
	"skill",
	ColJobTitle,
	ColSalaryUSD,
	ColExperienceLevel,
	ColIndustry,
	ColCompanySize,
}

// Row renders the association in SkillColumns order.
func (s SkillAssociation) Row() []any {
	return []any{
		s.JobID,
		s.Skill,
		s.JobTitle,
		s.SalaryUSD,
		s.ExperienceLevel,
		s.Industry,
		s.CompanySize,
	}
}
