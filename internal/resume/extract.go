// Package resume turns raw resume text into a structured Profile using
// hand-written pattern rules. Extractors never fail; unrecognised input
// produces empty or default values.
package resume

// Extract runs every extractor over text and fills the derived fields. The
// caller sets Metadata.Confidence, Metadata.ExtractionMethod and
// Metadata.AnalysisDate.
func Extract(text string) Profile {
	skills := ExtractSkills(text)
	experience := ExtractExperience(text)
	years := TotalYearsExperience(experience)
	primary := PrimarySkillCategory(skills)

	return Profile{
		PersonalInfo:   ExtractPersonalInfo(text),
		Summary:        ExtractSummary(text),
		Skills:         skills,
		Experience:     experience,
		Education:      ExtractEducation(text),
		JobPreferences: SuggestPreferences(text, skills, years),
		Metadata: Metadata{
			TotalYearsExperience: years,
			PrimarySkillCategory: primary,
			SuggestedJobCategory: SuggestJobCategory(primary),
		},
	}
}

// NormalizeSkills repairs a skill list from an untrusted source: blank names
// are dropped, levels and categories outside their enums are reset, and
// duplicates are removed case-insensitively keeping the first.
func NormalizeSkills(skills []Skill) []Skill {
	out := make([]Skill, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))

	for _, skill := range skills {
		key := normalizedKey(skill.Name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		skill.Name = trimmed(skill.Name)
		skill.Level = SkillLevel(normalizedKey(string(skill.Level)))
		if !validLevel(skill.Level) {
			skill.Level = LevelIntermediate
		}
		skill.Category = SkillCategory(normalizedKey(string(skill.Category)))
		if !ValidCategory(skill.Category) {
			skill.Category = CategoryTechnical
		}
		out = append(out, skill)
	}
	return out
}

func validLevel(level SkillLevel) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

// ValidCategory reports whether category is one of Categories.
func ValidCategory(category SkillCategory) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidExperienceLevel reports whether level is one of the known buckets.
func ValidExperienceLevel(level ExperienceLevel) bool {
	switch level {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}
