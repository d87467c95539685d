// Package matching scores a resume against a job description by keyword
// overlap. It is the deterministic path used when no language model answer
// is available.
package matching

import (
	"fmt"
	"math"
	"strings"
)

const (
	maxMatched     = 10
	maxGap         = 8
	maxGapAdvice   = 3
	MinScore       = 0
	MaxScore       = 100
	noKeywordsNote = "The job description does not mention any tracked skills, so keyword overlap could not be measured."
)

// Result is the compatibility verdict for one resume and one job.
type Result struct {
	MatchScore    int      `json:"matchScore"`
	Explanation   string   `json:"explanation"`
	Suggestions   []string `json:"suggestions"`
	SkillsMatched []string `json:"skillsMatched"`
	SkillsGap     []string `json:"skillsGap"`
}

// keywords spans technology, soft skills and logistics. Matching is a plain
// case-insensitive substring test.
var keywords = []string{
	"javascript", "python", "java", "react", "node", "sql", "html", "css",
	"aws", "docker", "git", "api", "machine learning", "data analysis", "excel",
	"communication", "leadership", "teamwork", "problem solving", "management",
	"analytical", "creative", "time management", "customer service",
	"logistics", "supply chain", "inventory", "warehouse", "transportation",
	"operations", "procurement", "sales", "marketing", "finance",
	"project management", "agile",
}

var genericAdvice = []string{
	"Quantify achievements with measurable results",
	"Tailor the resume summary to the role's key requirements",
}

// Keywords returns the tracked keywords present in text, in vocabulary order.
func Keywords(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

// Fallback computes a Result from keyword overlap. It is pure: identical
// inputs give identical results.
func Fallback(resumeText, jobDescription string) Result {
	jobKeywords := Keywords(jobDescription)
	resumeKeywords := make(map[string]struct{})
	for _, keyword := range Keywords(resumeText) {
		resumeKeywords[keyword] = struct{}{}
	}

	matched := make([]string, 0)
	gap := make([]string, 0)
	for _, keyword := range jobKeywords {
		if _, ok := resumeKeywords[keyword]; ok {
			matched = append(matched, keyword)
		} else {
			gap = append(gap, keyword)
		}
	}

	score := ClampScore(100 * float64(len(matched)) / float64(max(len(jobKeywords), 1)))

	return Result{
		MatchScore:    score,
		Explanation:   explain(len(matched), len(jobKeywords), score, matched),
		Suggestions:   suggest(gap),
		SkillsMatched: head(matched, maxMatched),
		SkillsGap:     head(gap, maxGap),
	}
}

// ClampScore rounds score to the nearest integer within [MinScore, MaxScore].
// NaN becomes MinScore.
func ClampScore(score float64) int {
	if math.IsNaN(score) {
		return MinScore
	}
	rounded := math.Round(score)
	switch {
	case rounded < MinScore:
		return MinScore
	case rounded > MaxScore:
		return MaxScore
	}
	return int(rounded)
}

func explain(matched, total, score int, skills []string) string {
	if total == 0 {
		return noKeywordsNote
	}
	text := fmt.Sprintf("Keyword analysis found %d of %d job-relevant skills in the resume (%d%% match).", matched, total, score)
	if matched > 0 {
		text += " Matching skills: " + strings.Join(head(skills, maxMatched), ", ") + "."
	}
	return text
}

func suggest(gap []string) []string {
	suggestions := make([]string, 0, maxGapAdvice+len(genericAdvice))
	for _, keyword := range head(gap, maxGapAdvice) {
		suggestions = append(suggestions, fmt.Sprintf("Highlight any %s experience the job asks for", keyword))
	}
	return append(suggestions, genericAdvice...)
}

func head(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
