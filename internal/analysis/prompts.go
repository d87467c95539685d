package analysis

import (
	_ "embed"
	"strings"
	"unicode/utf8"
)

//go:embed prompts/match.md
var matchPromptTemplate string

//go:embed prompts/profile.md
var profilePromptTemplate string

//go:embed prompts/suggestions.md
var suggestionsPromptTemplate string

const (
	placeholderResume = "{{RESUME_TEXT}}"
	placeholderJob    = "{{JOB_DESCRIPTION}}"
)

func buildMatchPrompt(resumeText, jobDescription string) string {
	template := matchPromptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME_TEXT}}\n\nJob description:\n{{JOB_DESCRIPTION}}\n\nJSON Response:"
	}
	// One pass, so placeholder text inside either input is left alone.
	return strings.NewReplacer(placeholderResume, resumeText, placeholderJob, jobDescription).Replace(template)
}

func buildResumePrompt(template, resumeText string) string {
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, placeholderResume, resumeText)
}

// truncateRunes cuts s to at most limit runes. A non-positive limit disables
// truncation.
func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
