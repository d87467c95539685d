package analysis

import (
	"context"
	"math"

	"github.com/spigell/campus-match/internal/ai"
	"github.com/spigell/campus-match/internal/matching"
)

// AnalyzeResumeMatch scores resumeText against jobDescription. The result
// always has a score in [0,100] and a non-empty explanation.
func (e *Engine) AnalyzeResumeMatch(ctx context.Context, resumeText, jobDescription string) matching.Result {
	result, err := e.matchWithAI(ctx, resumeText, jobDescription)
	if err != nil {
		e.logFallback(pathMatch, err)
		return matching.Fallback(resumeText, jobDescription)
	}
	return result
}

func (e *Engine) matchWithAI(ctx context.Context, resumeText, jobDescription string) (matching.Result, error) {
	raw, err := e.complete(ctx, pathMatch, ai.Request{
		Prompt:          buildMatchPrompt(e.resumeForPrompt(resumeText), jobDescription),
		MaxOutputTokens: matchMaxTokens,
		Timeout:         e.cfg.MatchTimeout,
	})
	if err != nil {
		return matching.Result{}, err
	}

	result, err := parseMatch(raw)
	if err != nil {
		return matching.Result{}, err
	}

	e.logAI(pathMatch, raw)
	return result, nil
}

func parseMatch(raw string) (matching.Result, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return matching.Result{}, err
	}

	score := ai.CoerceFloat(data["matchScore"])
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return matching.Result{}, ai.Malformed("matchScore is not numeric", raw, nil)
	}

	explanation := ai.CoerceString(data["explanation"])
	if explanation == "" {
		return matching.Result{}, ai.Malformed("explanation is missing", raw, nil)
	}

	return matching.Result{
		MatchScore:    matching.ClampScore(score),
		Explanation:   explanation,
		Suggestions:   ai.CoerceStrings(data["suggestions"]),
		SkillsMatched: ai.CoerceStrings(data["skillsMatched"]),
		SkillsGap:     ai.CoerceStrings(data["skillsGap"]),
	}, nil
}
