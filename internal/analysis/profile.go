package analysis

import (
	"context"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/campus-match/internal/ai"
	"github.com/spigell/campus-match/internal/matching"
	"github.com/spigell/campus-match/internal/resume"
)

const (
	fallbackConfidence  = 75
	defaultAIConfidence = 80
)

// AnalyzeCompleteResume extracts a full profile from resumeText. The AI call
// is given at most Config.ProfileDeadline; past that the heuristic profile is
// returned.
func (e *Engine) AnalyzeCompleteResume(ctx context.Context, resumeText string) resume.Profile {
	profile, err := e.profileWithAI(ctx, resumeText)
	if err != nil {
		e.logFallback(pathProfile, err)
		return e.fallbackProfile(resumeText)
	}
	return profile
}

func (e *Engine) profileWithAI(ctx context.Context, resumeText string) (resume.Profile, error) {
	raw, err := e.completeWithDeadline(ctx, pathProfile, ai.Request{
		Prompt:          buildResumePrompt(profilePromptTemplate, e.resumeForPrompt(resumeText)),
		MaxOutputTokens: profileMaxTokens,
		Timeout:         e.cfg.ProfileTimeout,
	}, e.cfg.ProfileDeadline)
	if err != nil {
		return resume.Profile{}, err
	}

	profile, meta, err := decodeProfile(raw)
	if err != nil {
		return resume.Profile{}, err
	}

	e.logAI(pathProfile, raw)
	return e.completeProfile(profile, meta, resumeText), nil
}

func (e *Engine) fallbackProfile(resumeText string) resume.Profile {
	profile := resume.Extract(resumeText)
	profile.Metadata.Confidence = fallbackConfidence
	profile.Metadata.ExtractionMethod = resume.MethodFallback
	profile.Metadata.AnalysisDate = e.now()
	return profile
}

// decodeProfile decodes the model answer. analysisMetadata is returned as a
// raw map since its numbers are coerced by hand.
func decodeProfile(raw string) (resume.Profile, map[string]any, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return resume.Profile{}, nil, err
	}
	if _, ok := data["personalInfo"]; !ok {
		if _, ok := data["skills"]; !ok {
			return resume.Profile{}, nil, ai.Malformed("profile has neither personalInfo nor skills", raw, nil)
		}
	}

	meta, _ := data["analysisMetadata"].(map[string]any)
	delete(data, "analysisMetadata")
	data["skills"] = liftSkillNames(data["skills"])

	var profile resume.Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		return resume.Profile{}, nil, err
	}
	if err := decoder.Decode(data); err != nil {
		return resume.Profile{}, nil, ai.Malformed("decode profile", raw, err)
	}

	return profile, meta, nil
}

// liftSkillNames turns bare skill strings into {"name": s} objects.
func liftSkillNames(v any) any {
	items, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if name, ok := item.(string); ok {
			out = append(out, map[string]any{"name": name})
			continue
		}
		out = append(out, item)
	}
	return out
}

// completeProfile repairs the model's profile and fills anything it left out
// from the heuristic extractors.
func (e *Engine) completeProfile(profile resume.Profile, meta map[string]any, resumeText string) resume.Profile {
	heuristic := resume.ExtractPersonalInfo(resumeText)
	info := &profile.PersonalInfo
	info.Name = strings.TrimSpace(info.Name)
	if info.Name == "" {
		info.Name = heuristic.Name
	}
	if info.Email == "" {
		info.Email = heuristic.Email
	}
	if info.Phone == "" {
		info.Phone = heuristic.Phone
	}
	if info.LinkedIn == "" {
		info.LinkedIn = heuristic.LinkedIn
	}
	if info.GitHub == "" {
		info.GitHub = heuristic.GitHub
	}

	profile.Skills = resume.NormalizeSkills(profile.Skills)
	if profile.Experience == nil {
		profile.Experience = []resume.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []resume.Education{}
	}

	years := ai.CoerceFloat(meta["totalYearsExperience"])
	if math.IsNaN(years) || years < 0 {
		years = resume.TotalYearsExperience(profile.Experience)
	}

	primary := resume.SkillCategory(strings.ToLower(ai.CoerceString(meta["primarySkillCategory"])))
	if !resume.ValidCategory(primary) {
		primary = resume.PrimarySkillCategory(profile.Skills)
	}

	suggested := ai.CoerceString(meta["suggestedJobCategory"])
	if suggested == "" {
		suggested = resume.SuggestJobCategory(primary)
	}

	confidence := defaultAIConfidence
	if c := ai.CoerceFloat(meta["confidence"]); !math.IsNaN(c) {
		confidence = matching.ClampScore(c)
	}

	inferred := resume.SuggestPreferences(resumeText, profile.Skills, years)
	prefs := &profile.JobPreferences
	if len(prefs.PreferredRoles) == 0 {
		prefs.PreferredRoles = inferred.PreferredRoles
	}
	if len(prefs.PreferredIndustries) == 0 {
		prefs.PreferredIndustries = inferred.PreferredIndustries
	}
	prefs.ExperienceLevel = resume.ExperienceLevel(strings.ToLower(string(prefs.ExperienceLevel)))
	if !resume.ValidExperienceLevel(prefs.ExperienceLevel) {
		prefs.ExperienceLevel = inferred.ExperienceLevel
	}
	if strings.TrimSpace(prefs.WorkMode) == "" {
		prefs.WorkMode = inferred.WorkMode
	}

	profile.Metadata = resume.Metadata{
		Confidence:           confidence,
		ExtractionMethod:     resume.MethodAI,
		TotalYearsExperience: math.Round(years*10) / 10,
		PrimarySkillCategory: primary,
		SuggestedJobCategory: suggested,
		AnalysisDate:         e.now(),
	}
	return profile
}
