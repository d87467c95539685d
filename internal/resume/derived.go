package resume

import (
	"math"
	"strings"
)

var rolesByCategory = map[SkillCategory][]string{
	CategoryTechnical:   {"Software Engineer", "Full Stack Developer", "Data Analyst"},
	CategoryBusiness:    {"Business Analyst", "Marketing Associate", "Sales Executive"},
	CategoryOperational: {"Operations Executive", "Supply Chain Analyst", "Logistics Coordinator"},
	CategorySoft:        {"Customer Success Associate", "HR Associate"},
	CategoryLanguage:    {"Content Writer", "Translator"},
}

var industriesByCategory = map[SkillCategory][]string{
	CategoryTechnical:   {"Information Technology", "Software"},
	CategoryBusiness:    {"Consulting", "Finance", "Marketing"},
	CategoryOperational: {"Logistics", "Manufacturing", "Retail"},
	CategorySoft:        {"Services", "Education"},
	CategoryLanguage:    {"Media", "Education"},
}

var jobCategories = map[SkillCategory]string{
	CategoryTechnical:   "Technology",
	CategoryBusiness:    "Business",
	CategoryOperational: "Operations",
	CategorySoft:        "General Management",
	CategoryLanguage:    "Communications",
}

const (
	defaultRole     = "Graduate Trainee"
	defaultIndustry = "General"
)

// TotalYearsExperience sums the month spans of all entries whose dates can
// be parsed, rounded to one decimal.
func TotalYearsExperience(entries []Experience) float64 {
	months := 0
	for _, entry := range entries {
		sy, sm, ok := parseYearMonth(entry.StartDate)
		if !ok {
			continue
		}
		end := entry.EndDate
		if entry.IsCurrentJob {
			end = presentLabel
		}
		ey, em, ok := parseYearMonth(end)
		if !ok {
			continue
		}
		if delta := (ey-sy)*12 + (em - sm); delta > 0 {
			months += delta
		}
	}
	return math.Round(float64(months)/12*10) / 10
}

// PrimarySkillCategory is the most frequent category. Ties go to the
// category listed first in Categories; no skills means technical.
func PrimarySkillCategory(skills []Skill) SkillCategory {
	counts := make(map[SkillCategory]int, len(Categories))
	for _, skill := range skills {
		counts[skill.Category]++
	}

	best := CategoryTechnical
	bestCount := 0
	for _, category := range Categories {
		if counts[category] > bestCount {
			best, bestCount = category, counts[category]
		}
	}
	return best
}

// SuggestJobCategory maps a primary skill category to a job board category.
func SuggestJobCategory(primary SkillCategory) string {
	if category, ok := jobCategories[primary]; ok {
		return category
	}
	return jobCategories[CategoryTechnical]
}

// ExperienceLevelFor buckets years of experience.
func ExperienceLevelFor(years float64) ExperienceLevel {
	switch {
	case years < 2:
		return ExperienceEntry
	case years < 5:
		return ExperienceMid
	case years < 10:
		return ExperienceSenior
	default:
		return ExperienceExecutive
	}
}

// DetectWorkMode looks for an explicit mention of remote, hybrid or on-site work.
func DetectWorkMode(text string) string {
	lower := strings.ToLower(text)
	switch {
	case findTerm(lower, "hybrid") >= 0:
		return "hybrid"
	case findTerm(lower, "remote") >= 0:
		return "remote"
	case findTerm(lower, "on-site") >= 0, findTerm(lower, "onsite") >= 0, findTerm(lower, "in-office") >= 0:
		return "onsite"
	default:
		return "flexible"
	}
}

// SuggestPreferences infers job preferences from the categories present in
// skills and the total years of experience.
func SuggestPreferences(text string, skills []Skill, years float64) JobPreferences {
	present := make(map[SkillCategory]bool, len(Categories))
	for _, skill := range skills {
		present[skill.Category] = true
	}

	var roles, industries []string
	for _, category := range Categories {
		if !present[category] {
			continue
		}
		roles = appendUnique(roles, rolesByCategory[category]...)
		industries = appendUnique(industries, industriesByCategory[category]...)
	}
	if len(roles) == 0 {
		roles = []string{defaultRole}
	}
	if len(industries) == 0 {
		industries = []string{defaultIndustry}
	}

	return JobPreferences{
		PreferredRoles:      roles,
		PreferredIndustries: industries,
		ExperienceLevel:     ExperienceLevelFor(years),
		WorkMode:            DetectWorkMode(text),
	}
}

func appendUnique(list []string, values ...string) []string {
	for _, value := range values {
		found := false
		for _, existing := range list {
			if existing == value {
				found = true
				break
			}
		}
		if !found {
			list = append(list, value)
		}
	}
	return list
}
