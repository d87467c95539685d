package analysis

import (
	"context"

	"github.com/spigell/campus-match/internal/ai"
)

// Suggestion is one proposed resume edit.
type Suggestion struct {
	Section       string `json:"section"`
	CurrentText   string `json:"currentText"`
	SuggestedText string `json:"suggestedText"`
	Reason        string `json:"reason"`
}

var defaultSuggestions = []Suggestion{
	{
		Section:       "Summary",
		CurrentText:   "Generic or missing professional summary",
		SuggestedText: "Open with two sentences naming your target role, your strongest skills and one measurable achievement.",
		Reason:        "Recruiters read the summary first when deciding whether to continue.",
	},
	{
		Section:       "Experience",
		CurrentText:   "Responsibilities listed without outcomes",
		SuggestedText: "Start each bullet with an action verb and quantify the result, for example \"Cut report preparation time by 30%\".",
		Reason:        "Quantified achievements show impact rather than duties.",
	},
	{
		Section:       "Skills",
		CurrentText:   "Skills listed without context",
		SuggestedText: "Group skills by category and mirror the exact keywords used in the job descriptions you target.",
		Reason:        "Applicant tracking systems match on exact keywords.",
	},
}

// GenerateImprovementSuggestions proposes edits to resumeText. The result is
// never empty.
func (e *Engine) GenerateImprovementSuggestions(ctx context.Context, resumeText string) []Suggestion {
	suggestions, err := e.suggestionsWithAI(ctx, resumeText)
	if err != nil {
		e.logFallback(pathSuggestions, err)
		return DefaultSuggestions()
	}
	return suggestions
}

// DefaultSuggestions returns a copy of the canned suggestion list.
func DefaultSuggestions() []Suggestion {
	out := make([]Suggestion, len(defaultSuggestions))
	copy(out, defaultSuggestions)
	return out
}

func (e *Engine) suggestionsWithAI(ctx context.Context, resumeText string) ([]Suggestion, error) {
	raw, err := e.complete(ctx, pathSuggestions, ai.Request{
		Prompt:          buildResumePrompt(suggestionsPromptTemplate, e.resumeForPrompt(resumeText)),
		MaxOutputTokens: suggestionsMaxTokens,
		Timeout:         e.cfg.SuggestionsTimeout,
	})
	if err != nil {
		return nil, err
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		return nil, err
	}

	e.logAI(pathSuggestions, raw)
	return suggestions, nil
}

func parseSuggestions(raw string) ([]Suggestion, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return nil, err
	}

	items, _ := data["suggestions"].([]any)
	suggestions := make([]Suggestion, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := Suggestion{
			Section:       ai.CoerceString(fields["section"]),
			CurrentText:   ai.CoerceString(fields["currentText"]),
			SuggestedText: ai.CoerceString(fields["suggestedText"]),
			Reason:        ai.CoerceString(fields["reason"]),
		}
		if s.SuggestedText == "" {
			continue
		}
		if s.Section == "" {
			s.Section = "General"
		}
		suggestions = append(suggestions, s)
	}

	if len(suggestions) == 0 {
		return nil, ai.Malformed("no usable suggestions", raw, nil)
	}
	return suggestions, nil
}
