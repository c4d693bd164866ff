package enrich

import "math"

const (
	RemoteOnsite = "Onsite"
	RemoteHybrid = "Hybrid"
	RemoteFull   = "Remote"
)

// RemoteCategory maps a remote ratio onto a work arrangement. Only 0 and 100
// are exact matches; every other value, in range or not, is Hybrid.
func RemoteCategory(ratio int) string {
	switch ratio {
	case 0:
		return RemoteOnsite
	case 100:
		return RemoteFull
	default:
		return RemoteHybrid
	}
}

type salaryBin struct {
	upper float64
	label string
}

const salaryFloor = 0

// Bins are (previous upper, upper]; the first lower edge is salaryFloor.
var salaryBins = []salaryBin{
	{50000, "<50K"},
	{75000, "50-75K"},
	{100000, "75-100K"},
	{150000, "100-150K"},
	{300000, ">150K"},
}

// SalaryLabels lists the salary buckets in ascending order.
func SalaryLabels() []string {
	labels := make([]string, len(salaryBins))
	for i, bin := range salaryBins {
		labels[i] = bin.label
	}
	return labels
}

// SalaryRange buckets a salary into left-exclusive, right-inclusive bins. A
// salary of 0 or below, above the last edge, or missing has no bucket and
// yields "".
func SalaryRange(salary float64) string {
	if math.IsNaN(salary) || salary <= salaryFloor {
		return ""
	}
	for _, bin := range salaryBins {
		if salary <= bin.upper {
			return bin.label
		}
	}
	return ""
}

const (
	ExperienceEntry  = "Entry (0-2y)"
	ExperienceMid    = "Mid (3-5y)"
	ExperienceSenior = "Senior (6-10y)"
	ExperienceExpert = "Expert (10+y)"
)

// ExperienceCategory buckets years of experience; each boundary belongs to
// the lower bucket.
func ExperienceCategory(years int) string {
	switch {
	case years <= 2:
		return ExperienceEntry
	case years <= 5:
		return ExperienceMid
	case years <= 10:
		return ExperienceSenior
	default:
		return ExperienceExpert
	}
}

var experienceLevels = map[string]string{
	"EN": "Entry Level",
	"MI": "Mid Level",
	"SE": "Senior",
	"EX": "Executive",
}

// ExperienceLevelFull expands a level code. Unknown codes pass through.
func ExperienceLevelFull(code string) string {
	if full, ok := experienceLevels[code]; ok {
		return full
	}
	return code
}

const (
	BenefitsUnknown      = "Unknown"
	BenefitsExcellent    = "Excellent (8+)"
	BenefitsGood         = "Good (6-8)"
	BenefitsAverage      = "Average (4-6)"
	BenefitsBelowAverage = "Below Average (<4)"
)

// BenefitsCategory tiers a benefits score. Missing scores are checked before
// any threshold.
func BenefitsCategory(score float64) string {
	switch {
	case math.IsNaN(score):
		return BenefitsUnknown
	case score >= 8:
		return BenefitsExcellent
	case score >= 6:
		return BenefitsGood
	case score >= 4:
		return BenefitsAverage
	default:
		return BenefitsBelowAverage
	}
}
