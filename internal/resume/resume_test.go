package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixNow(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })
}

const sampleResume = `John Smith
john.smith@example.com | (555) 123-4567
linkedin.com/in/john-smith | https://github.com/jsmith

Summary
Backend engineer open to remote roles.

Work Experience
Software Engineer
Acme Corp, Bangalore | Jan 2020 - Present
• Built APIs in Python
• Led migration to Docker
Data Intern at Beta Labs 06/2018 - 12/2019
- Cleaned datasets

Education
B.Tech in CSE, IIT Delhi, 2014 - 2018
CGPA: 8.6/10

Skills
SQL, communication
`

func TestExtractPersonalInfo(t *testing.T) {
	info := ExtractPersonalInfo(sampleResume)

	assert.Equal(t, "John Smith", info.Name)
	assert.Equal(t, "john.smith@example.com", info.Email)
	assert.Equal(t, "(555) 123-4567", info.Phone)
	assert.Equal(t, "linkedin.com/in/john-smith", info.LinkedIn)
	assert.Equal(t, "https://github.com/jsmith", info.GitHub)
}

func TestExtractPersonalInfoDefaults(t *testing.T) {
	info := ExtractPersonalInfo("EXPERIENCE\n42 things\n")

	assert.Equal(t, DefaultTitle, info.Name)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.Phone)
}

func TestExtractSkillsExample(t *testing.T) {
	text := "Jane Doe\njane@x.com\nJAVASCRIPT, REACT EXPERT"

	skills := ExtractSkills(text)
	require.Len(t, skills, 2)

	assert.Equal(t, "JavaScript", skills[0].Name)
	assert.Equal(t, CategoryTechnical, skills[0].Category)
	assert.Equal(t, Skill{Name: "React", Level: LevelExpert, Category: CategoryTechnical}, skills[1])

	assert.Equal(t, "jane@x.com", ExtractPersonalInfo(text).Email)
}

func TestExtractSkillsDeduplicates(t *testing.T) {
	skills := ExtractSkills("Python developer. PYTHON scripting and more python. Golang too.")

	count := 0
	for _, skill := range skills {
		if skill.Name == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, skills, Skill{Name: "Go", Level: LevelIntermediate, Category: CategoryTechnical})
}

func skillNames(skills []Skill) []string {
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, skill.Name)
	}
	return names
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	skills := ExtractSkills("Excellent communication; reactive mindset; expressive writing; MySQL")

	assert.Equal(t, []string{"MySQL", "Communication"}, skillNames(skills))
}

func TestExtractSkillsVersionSuffixes(t *testing.T) {
	skills := ExtractSkills("Frontend: HTML5, CSS3, ReactJS, Python3, NodeJS")

	assert.Equal(t, []string{"Python", "React", "HTML", "CSS"}, skillNames(skills))
}

func TestExtractSkillsLevelPrecedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want SkillLevel
	}{
		{name: "default", text: "Worked with Docker daily", want: LevelIntermediate},
		{name: "beginner", text: "Basic knowledge of Docker", want: LevelBeginner},
		{name: "advanced", text: "Proficient in Docker", want: LevelAdvanced},
		{name: "expert wins over beginner", text: "Learning Kubernetes, expert in Docker", want: LevelExpert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := ExtractSkills(tt.text)
			var docker *Skill
			for i := range skills {
				if skills[i].Name == "Docker" {
					docker = &skills[i]
				}
			}
			require.NotNil(t, docker)
			assert.Equal(t, tt.want, docker.Level)
		})
	}
}

func TestExtractExperience(t *testing.T) {
	entries := ExtractExperience(sampleResume)
	require.Len(t, entries, 2)

	assert.Equal(t, Experience{
		Title:        "Software Engineer",
		Company:      "Acme Corp",
		Location:     "Bangalore",
		StartDate:    "2020-01",
		EndDate:      "Present",
		Description:  "Built APIs in Python\nLed migration to Docker",
		IsCurrentJob: true,
	}, entries[0])

	assert.Equal(t, Experience{
		Title:       "Data Intern",
		Company:     "Beta Labs",
		StartDate:   "2018-06",
		EndDate:     "2019-12",
		Description: "Cleaned datasets",
	}, entries[1])
}

func TestExtractExperienceTitleFromPreviousLine(t *testing.T) {
	entries := ExtractExperience("Experience\nMarketing Associate, Zeta Media\n2019 - 2021\nProjects\n2015 - 2016")
	require.Len(t, entries, 1)

	assert.Equal(t, "Marketing Associate", entries[0].Title)
	assert.Equal(t, "Zeta Media", entries[0].Company)
	assert.Equal(t, "2019", entries[0].StartDate)
	assert.Equal(t, "2021", entries[0].EndDate)
	assert.False(t, entries[0].IsCurrentJob)
}

func TestExtractExperienceTitleAfterCompanyLine(t *testing.T) {
	entries := ExtractExperience("Experience\nAcme Corp | 2019 - 2021\nSoftware Engineer\n• Built things\nGlobex | 2021 - 2023\n• Led team")
	require.Len(t, entries, 2)

	assert.Equal(t, "Software Engineer", entries[0].Title)
	assert.Equal(t, "Acme Corp", entries[0].Company)
	assert.Equal(t, "Built things", entries[0].Description)

	assert.Equal(t, DefaultTitle, entries[1].Title)
	assert.Equal(t, "Globex", entries[1].Company)
	assert.Equal(t, "Led team", entries[1].Description)
}

func TestExtractExperienceDefaultTitle(t *testing.T) {
	entries := ExtractExperience("Work History\nZeta Media\n2019 - 2021")
	require.Len(t, entries, 1)

	assert.Equal(t, DefaultTitle, entries[0].Title)
	assert.Equal(t, "Zeta Media", entries[0].Company)
}

func TestExtractExperienceOutsideSection(t *testing.T) {
	assert.Empty(t, ExtractExperience("Software Engineer\nAcme 2019 - 2021"))
	assert.NotNil(t, ExtractExperience(""))
}

func TestExtractEducation(t *testing.T) {
	fixNow(t)

	entries := ExtractEducation(sampleResume)
	require.Len(t, entries, 1)

	assert.Equal(t, Education{
		Degree:      "B.Tech",
		Field:       "Computer Science Engineering",
		Institution: "IIT Delhi",
		StartYear:   "2014",
		EndYear:     "2018",
		GPA:         "8.6/10",
		IsCompleted: true,
	}, entries[0])
}

func TestExtractEducationInProgress(t *testing.T) {
	fixNow(t)

	text := "Education\nM.Tech in ECE 2022 - Present\nSTANFORD UNIVERSITY\nMaster of Science in Computer Science, 2023 - 2026"
	entries := ExtractEducation(text)
	require.Len(t, entries, 2)

	assert.Equal(t, "M.Tech", entries[0].Degree)
	assert.Equal(t, "Electronics and Communication Engineering", entries[0].Field)
	assert.Equal(t, "STANFORD UNIVERSITY", entries[0].Institution)
	assert.Equal(t, "Present", entries[0].EndYear)
	assert.False(t, entries[0].IsCompleted)

	assert.Equal(t, "M.Sc", entries[1].Degree)
	assert.Equal(t, "Computer Science", entries[1].Field)
	assert.Equal(t, "2026", entries[1].EndYear)
	assert.False(t, entries[1].IsCompleted)
}

func TestExtractEducationPendingInstitution(t *testing.T) {
	fixNow(t)

	entries := ExtractEducation("Academics\nDELHI PUBLIC SCHOOL\nHigher Secondary, 2012")
	require.Len(t, entries, 1)

	assert.Equal(t, "Higher Secondary", entries[0].Degree)
	assert.Equal(t, "DELHI PUBLIC SCHOOL", entries[0].Institution)
	assert.Equal(t, "2012", entries[0].EndYear)
	assert.True(t, entries[0].IsCompleted)
}

func TestTotalYearsExperience(t *testing.T) {
	fixNow(t)

	entries := []Experience{
		{StartDate: "2020-01", EndDate: "Present", IsCurrentJob: true},
		{StartDate: "2018-06", EndDate: "2019-12"},
		{StartDate: "sometime", EndDate: "later"},
		{StartDate: "2021", EndDate: "2019"},
	}

	assert.Equal(t, 5.5, TotalYearsExperience(entries))
	assert.Zero(t, TotalYearsExperience(nil))
}

func TestPrimarySkillCategory(t *testing.T) {
	assert.Equal(t, CategoryTechnical, PrimarySkillCategory(nil))
	assert.Equal(t, CategoryBusiness, PrimarySkillCategory([]Skill{
		{Name: "Soft", Category: CategorySoft},
		{Name: "Sales", Category: CategoryBusiness},
	}))
	assert.Equal(t, CategorySoft, PrimarySkillCategory([]Skill{
		{Name: "Go", Category: CategoryTechnical},
		{Name: "Teamwork", Category: CategorySoft},
		{Name: "Leadership", Category: CategorySoft},
	}))
}

func TestSuggestPreferences(t *testing.T) {
	prefs := SuggestPreferences("happy to work hybrid", []Skill{
		{Name: "Logistics", Category: CategoryOperational},
		{Name: "Go", Category: CategoryTechnical},
	}, 3)

	assert.Equal(t, []string{
		"Software Engineer", "Full Stack Developer", "Data Analyst",
		"Operations Executive", "Supply Chain Analyst", "Logistics Coordinator",
	}, prefs.PreferredRoles)
	assert.Equal(t, ExperienceMid, prefs.ExperienceLevel)
	assert.Equal(t, "hybrid", prefs.WorkMode)

	empty := SuggestPreferences("", nil, 0)
	assert.Equal(t, []string{defaultRole}, empty.PreferredRoles)
	assert.Equal(t, []string{defaultIndustry}, empty.PreferredIndustries)
	assert.Equal(t, ExperienceEntry, empty.ExperienceLevel)
	assert.Equal(t, "flexible", empty.WorkMode)
}

func TestExperienceLevelFor(t *testing.T) {
	assert.Equal(t, ExperienceEntry, ExperienceLevelFor(1.9))
	assert.Equal(t, ExperienceMid, ExperienceLevelFor(2))
	assert.Equal(t, ExperienceSenior, ExperienceLevelFor(5.5))
	assert.Equal(t, ExperienceExecutive, ExperienceLevelFor(12))
}

func TestExtract(t *testing.T) {
	fixNow(t)

	profile := Extract(sampleResume)

	assert.Equal(t, "John Smith", profile.PersonalInfo.Name)
	assert.Equal(t, "Backend engineer open to remote roles.", profile.Summary)
	assert.Len(t, profile.Experience, 2)
	assert.Len(t, profile.Education, 1)
	assert.Equal(t, 5.5, profile.Metadata.TotalYearsExperience)
	assert.Equal(t, ExperienceSenior, profile.JobPreferences.ExperienceLevel)
	assert.Equal(t, "remote", profile.JobPreferences.WorkMode)
	assert.Equal(t, CategoryTechnical, profile.Metadata.PrimarySkillCategory)
	assert.Equal(t, "Technology", profile.Metadata.SuggestedJobCategory)
	assert.Empty(t, profile.Metadata.ExtractionMethod)
}

func TestExtractIsIdempotent(t *testing.T) {
	fixNow(t)

	assert.Equal(t, Extract(sampleResume), Extract(sampleResume))
}

func TestExtractEmptyInput(t *testing.T) {
	profile := Extract("")

	assert.Equal(t, DefaultTitle, profile.PersonalInfo.Name)
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Experience)
	assert.NotNil(t, profile.Education)
	assert.Zero(t, profile.Metadata.TotalYearsExperience)
}

func TestNormalizeSkills(t *testing.T) {
	skills := NormalizeSkills([]Skill{
		{Name: " React ", Level: "Expert", Category: "Technical"},
		{Name: "react", Level: LevelBeginner, Category: CategoryTechnical},
		{Name: "", Level: LevelBeginner},
		{Name: "Negotiation", Level: "guru", Category: "people"},
	})

	assert.Equal(t, []Skill{
		{Name: "React", Level: LevelExpert, Category: CategoryTechnical},
		{Name: "Negotiation", Level: LevelIntermediate, Category: CategoryTechnical},
	}, skills)
}
