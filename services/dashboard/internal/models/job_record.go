package models

import (
	"math"
	"time"
)

// Column names of the job postings workbook.
const (
	ColJobID             = "job_id"
	ColJobTitle          = "job_title"
	ColSalaryUSD         = "salary_usd"
	ColSalaryCurrency    = "salary_currency"
	ColExperienceLevel   = "experience_level"
	ColEmploymentType    = "employment_type"
	ColCompanyLocation   = "company_location"
	ColCompanySize       = "company_size"
	ColEmployeeResidence = "employee_residence"
	ColRemoteRatio       = "remote_ratio"
	ColRequiredSkills    = "required_skills"
	ColEducation         = "education_required"
	ColYearsExperience   = "years_experience"
	ColIndustry          = "industry"
	ColPostingDate       = "posting_date"
	ColDeadline          = "application_deadline"
	ColDescriptionLength = "job_description_length"
	ColBenefitsScore     = "benefits_score"
	ColCompanyName       = "company_name"
)

// JobRecord is one typed row of the filtered postings table.
type JobRecord struct {
	JobID             string
	JobTitle          string
	Industry          string
	EmploymentType    string
	ExperienceLevel   string
	YearsExperience   int
	SalaryUSD         float64 // NaN when absent
	SalaryCurrency    string
	RemoteRatio       int
	CompanySize       string
	CompanyName       string
	CompanyLocation   string
	EmployeeResidence string
	Education         string
	PostingDate       time.Time
	Deadline          *time.Time
	BenefitsScore     float64 // NaN when absent
	RequiredSkills    *string
	DescriptionLength float64 // NaN when absent
}

func (r JobRecord) HasSalary() bool {
	return !math.IsNaN(r.SalaryUSD)
}

func (r JobRecord) HasBenefits() bool {
	return !math.IsNaN(r.BenefitsScore)
}

func (r JobRecord) HasDescriptionLength() bool {
	return !math.IsNaN(r.DescriptionLength)
}

// EnrichedJobRecord is a JobRecord with the dashboard's derived columns.
type EnrichedJobRecord struct {
	JobRecord

	PostingYear         int
	PostingMonth        int
	PostingQuarter      int
	PostingYearMonth    string
	IsActive            bool
	RemoteCategory      string
	SalaryRange         string // empty when the salary falls outside every bin
	ExperienceCategory  string
	ExperienceLevelFull string
	BenefitsCategory    string
}

// SkillAssociation is one (job, skill) pair with value copies of the job
// fields the skills views slice by.
type SkillAssociation struct {
	JobID           string
	Skill           string
	JobTitle        string
	SalaryUSD       float64
	ExperienceLevel string
	Industry        string
	CompanySize     string
}
