package resume

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?1[\s.\-]?)?\(?\b\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)
	linkedInPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/in/[a-z0-9_\-%]+/?`)
	gitHubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[a-z0-9_\-]+/?`)
)

const (
	nameScanLines = 5
	maxNameLen    = 50
)

var notNames = map[string]struct{}{
	"curriculum vitae": {},
	"resume":           {},
	"personal resume":  {},
}

// ExtractPersonalInfo finds the candidate's name and contact details.
func ExtractPersonalInfo(text string) PersonalInfo {
	info := PersonalInfo{
		Name:     extractName(text),
		Email:    emailPattern.FindString(text),
		LinkedIn: linkedInPattern.FindString(text),
		GitHub:   gitHubPattern.FindString(text),
	}
	if phone := phonePattern.FindString(text); phone != "" {
		info.Phone = strings.TrimSpace(phone)
	}
	return info
}

func extractName(text string) string {
	lines := nonEmptyLines(text)
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}
	for _, line := range lines {
		if looksLikeName(line) {
			return strings.Join(strings.Fields(line), " ")
		}
	}
	return DefaultTitle
}

func looksLikeName(line string) bool {
	if len(line) >= maxNameLen || classifyHeader(line) != sectionNone {
		return false
	}
	if _, ok := notNames[strings.ToLower(line)]; ok {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, word := range words {
		letters := 0
		for _, r := range word {
			switch {
			case unicode.IsLetter(r):
				letters++
			case r == '.' || r == '\'' || r == '-':
			default:
				return false
			}
		}
		if letters == 0 {
			return false
		}
	}
	return true
}
