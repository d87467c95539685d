package resume

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExtractSkills returns vocabulary skills found in text, one per name, in
// category order. The level is read from the words surrounding the first
// occurrence.
func ExtractSkills(text string) []Skill {
	lower := strings.ToLower(text)
	title := cases.Title(language.English)

	skills := make([]Skill, 0)
	seen := make(map[string]struct{})

	for _, category := range Categories {
		for _, term := range skillVocabulary[category] {
			idx := findTerm(lower, term)
			if idx < 0 {
				continue
			}

			name, ok := canonicalSkillNames[term]
			if !ok {
				name = title.String(term)
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			skills = append(skills, Skill{
				Name:     name,
				Level:    levelAround(lower, idx, len(term)),
				Category: category,
			})
		}
	}

	return skills
}

// findTerm returns the index of the first occurrence of term that starts a
// word, or -1. The term may be followed by a version number or a "js" suffix
// (HTML5, Python3, ReactJS) but not by other letters, so java does not match
// inside javascript.
func findTerm(text, term string) int {
	offset := 0
	for {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return -1
		}
		start := offset + idx
		if (start == 0 || !isWordByte(text[start-1])) && termEnds(text, start+len(term)) {
			return start
		}
		offset = start + 1
	}
}

func termEnds(text string, end int) bool {
	i := end
	if strings.HasPrefix(text[i:], "js") {
		i += 2
	}
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	return i == len(text) || !isLetter(text[i])
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isWordByte(b byte) bool {
	return isLetter(b) || b >= '0' && b <= '9'
}

// levelAround inspects the window of levelWindow bytes on each side of a
// match. Cues are checked by precedence so an expert cue wins over a beginner
// cue in the same window.
func levelAround(text string, idx, length int) SkillLevel {
	lo := max(idx-levelWindow, 0)
	hi := min(idx+length+levelWindow, len(text))
	window := text[lo:hi]

	for _, cue := range levelCues {
		for _, word := range cue.words {
			if strings.Contains(window, word) {
				return cue.level
			}
		}
	}
	return LevelIntermediate
}
