package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"javascript", "java", "react", "leadership"}, Keywords("JavaScript and React; team LEADERSHIP"))
	assert.Empty(t, Keywords(""))
	assert.NotNil(t, Keywords(""))
}

func TestFallbackZeroOverlap(t *testing.T) {
	res := Fallback("Python developer with Docker", "We want someone who loves gardening")

	assert.Equal(t, 0, res.MatchScore)
	assert.NotNil(t, res.SkillsMatched)
	assert.Empty(t, res.SkillsMatched)
	assert.NotEmpty(t, res.Explanation)
	assert.NotEmpty(t, res.Suggestions)
}

func TestFallbackScore(t *testing.T) {
	res := Fallback(
		"Python, SQL and Docker. Strong communication.",
		"Looking for Python, SQL, AWS and communication skills",
	)

	assert.Equal(t, 75, res.MatchScore)
	assert.Equal(t, []string{"python", "sql", "communication"}, res.SkillsMatched)
	assert.Equal(t, []string{"aws"}, res.SkillsGap)
	assert.Contains(t, res.Explanation, "3 of 4")
	assert.Equal(t, "Highlight any aws experience the job asks for", res.Suggestions[0])
}

func TestFallbackRounding(t *testing.T) {
	// One of three job keywords present: 33.33 rounds to 33.
	res := Fallback("python", "python sql docker")
	assert.Equal(t, 33, res.MatchScore)

	// Two of three: 66.67 rounds to 67.
	res = Fallback("python sql", "python sql docker")
	assert.Equal(t, 67, res.MatchScore)
}

func TestFallbackCapsLists(t *testing.T) {
	all := "javascript python java react node sql html css aws docker git api machine learning data analysis excel communication leadership"

	matched := Fallback(all, all)
	assert.Equal(t, 100, matched.MatchScore)
	assert.Len(t, matched.SkillsMatched, maxMatched)

	gap := Fallback("", all)
	assert.Equal(t, 0, gap.MatchScore)
	assert.Len(t, gap.SkillsGap, maxGap)
	assert.Len(t, gap.Suggestions, maxGapAdvice+len(genericAdvice))
}

func TestFallbackNoJobKeywords(t *testing.T) {
	res := Fallback("python", "")

	assert.Equal(t, 0, res.MatchScore)
	assert.Equal(t, noKeywordsNote, res.Explanation)
	assert.Empty(t, res.SkillsGap)
}

func TestFallbackDeterministic(t *testing.T) {
	resume := "Supply chain analyst with Excel and SQL, agile teams"
	job := "Logistics and supply chain role requiring Excel, SQL, inventory and agile"

	first := Fallback(resume, job)
	for range 5 {
		assert.Equal(t, first, Fallback(resume, job))
	}
}

func TestFallbackScoreBounds(t *testing.T) {
	inputs := [][2]string{
		{"", ""},
		{"python", "python"},
		{"", "python java react"},
		{"java", "javascript"},
		{"ＰＹＴＨＯＮ", "python"},
	}
	for _, in := range inputs {
		res := Fallback(in[0], in[1])
		require.GreaterOrEqual(t, res.MatchScore, MinScore)
		require.LessOrEqual(t, res.MatchScore, MaxScore)
		require.NotEmpty(t, res.Explanation)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: -5, want: 0},
		{in: 0.4, want: 0},
		{in: 49.5, want: 50},
		{in: 100.2, want: 100},
		{in: 250, want: 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampScore(tt.in))
	}
}
