package enrich

// Summary counts the values of each derived category.
type Summary struct {
	Active             int
	RemoteCategory     map[string]int
	SalaryRange        map[string]int
	ExperienceCategory map[string]int
	BenefitsCategory   map[string]int
	UniqueSkills       int
}

// Summarize counts categories over jobs. Unlabeled salaries are not counted.
func Summarize(result Result) Summary {
	summary := Summary{
		RemoteCategory:     make(map[string]int),
		SalaryRange:        make(map[string]int),
		ExperienceCategory: make(map[string]int),
		BenefitsCategory:   make(map[string]int),
	}
	for _, label := range SalaryLabels() {
		summary.SalaryRange[label] = 0
	}

	for _, job := range result.Jobs {
		if job.IsActive {
			summary.Active++
		}
		summary.RemoteCategory[job.RemoteCategory]++
		if job.SalaryRange != "" {
			summary.SalaryRange[job.SalaryRange]++
		}
		summary.ExperienceCategory[job.ExperienceCategory]++
		summary.BenefitsCategory[job.BenefitsCategory]++
	}

	skills := make(map[string]struct{})
	for _, association := range result.Skills {
		skills[association.Skill] = struct{}{}
	}
	summary.UniqueSkills = len(skills)

	return summary
}
