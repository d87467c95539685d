package resume

import "time"

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

type SkillCategory string

const (
	CategoryTechnical   SkillCategory = "technical"
	CategoryBusiness    SkillCategory = "business"
	CategoryOperational SkillCategory = "operational"
	CategorySoft        SkillCategory = "soft"
	CategoryLanguage    SkillCategory = "language"
)

// Categories lists skill categories in precedence order.
var Categories = []SkillCategory{
	CategoryTechnical,
	CategoryBusiness,
	CategoryOperational,
	CategorySoft,
	CategoryLanguage,
}

type ExtractionMethod string

const (
	MethodAI       ExtractionMethod = "AI"
	MethodFallback ExtractionMethod = "fallback"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// DefaultTitle is used when no better value can be inferred.
const DefaultTitle = "Professional"

type PersonalInfo struct {
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email,omitempty" mapstructure:"email"`
	Phone    string `json:"phone,omitempty" mapstructure:"phone"`
	LinkedIn string `json:"linkedIn,omitempty" mapstructure:"linkedIn"`
	GitHub   string `json:"github,omitempty" mapstructure:"github"`
}

type Skill struct {
	Name     string        `json:"name" mapstructure:"name"`
	Level    SkillLevel    `json:"level" mapstructure:"level"`
	Category SkillCategory `json:"category" mapstructure:"category"`
}

type Experience struct {
	Title        string `json:"title" mapstructure:"title"`
	Company      string `json:"company" mapstructure:"company"`
	Location     string `json:"location" mapstructure:"location"`
	StartDate    string `json:"startDate" mapstructure:"startDate"`
	EndDate      string `json:"endDate" mapstructure:"endDate"`
	Description  string `json:"description" mapstructure:"description"`
	IsCurrentJob bool   `json:"isCurrentJob" mapstructure:"isCurrentJob"`
}

type Education struct {
	Degree      string `json:"degree" mapstructure:"degree"`
	Field       string `json:"field" mapstructure:"field"`
	Institution string `json:"institution" mapstructure:"institution"`
	StartYear   string `json:"startYear,omitempty" mapstructure:"startYear"`
	EndYear     string `json:"endYear,omitempty" mapstructure:"endYear"`
	GPA         string `json:"gpa,omitempty" mapstructure:"gpa"`
	IsCompleted bool   `json:"isCompleted" mapstructure:"isCompleted"`
}

type JobPreferences struct {
	PreferredRoles      []string        `json:"preferredRoles" mapstructure:"preferredRoles"`
	PreferredIndustries []string        `json:"preferredIndustries" mapstructure:"preferredIndustries"`
	ExperienceLevel     ExperienceLevel `json:"experienceLevel" mapstructure:"experienceLevel"`
	WorkMode            string          `json:"workMode" mapstructure:"workMode"`
}

type Metadata struct {
	Confidence           int              `json:"confidence" mapstructure:"confidence"`
	ExtractionMethod     ExtractionMethod `json:"extractionMethod" mapstructure:"extractionMethod"`
	TotalYearsExperience float64          `json:"totalYearsExperience" mapstructure:"totalYearsExperience"`
	PrimarySkillCategory SkillCategory    `json:"primarySkillCategory" mapstructure:"primarySkillCategory"`
	SuggestedJobCategory string           `json:"suggestedJobCategory" mapstructure:"suggestedJobCategory"`
	AnalysisDate         time.Time        `json:"analysisDate" mapstructure:"-"`
}

// Profile is the structured view of one resume.
type Profile struct {
	PersonalInfo   PersonalInfo   `json:"personalInfo" mapstructure:"personalInfo"`
	Summary        string         `json:"summary,omitempty" mapstructure:"summary"`
	Skills         []Skill        `json:"skills" mapstructure:"skills"`
	Experience     []Experience   `json:"experience" mapstructure:"experience"`
	Education      []Education    `json:"education" mapstructure:"education"`
	JobPreferences JobPreferences `json:"jobPreferences" mapstructure:"jobPreferences"`
	Metadata       Metadata       `json:"analysisMetadata" mapstructure:"analysisMetadata"`
}
