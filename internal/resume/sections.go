package resume

import "strings"

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionExperience
	sectionEducation
	sectionSummary
	sectionOther
)

var sectionHeaders = map[string]sectionKind{
	"experience":              sectionExperience,
	"work experience":         sectionExperience,
	"professional experience": sectionExperience,
	"employment history":      sectionExperience,
	"employment":              sectionExperience,
	"work history":            sectionExperience,
	"internships":             sectionExperience,
	"internship":              sectionExperience,
	"relevant experience":     sectionExperience,

	"education":                  sectionEducation,
	"academic background":        sectionEducation,
	"academic qualifications":    sectionEducation,
	"educational qualifications": sectionEducation,
	"academics":                  sectionEducation,
	"qualifications":             sectionEducation,

	"summary":              sectionSummary,
	"professional summary": sectionSummary,
	"career objective":     sectionSummary,
	"objective":            sectionSummary,
	"profile":              sectionSummary,
	"about me":             sectionSummary,

	"skills":                     sectionOther,
	"technical skills":           sectionOther,
	"key skills":                 sectionOther,
	"core competencies":          sectionOther,
	"projects":                   sectionOther,
	"academic projects":          sectionOther,
	"certifications":             sectionOther,
	"certificates":               sectionOther,
	"achievements":               sectionOther,
	"awards":                     sectionOther,
	"publications":               sectionOther,
	"languages":                  sectionOther,
	"interests":                  sectionOther,
	"hobbies":                    sectionOther,
	"references":                 sectionOther,
	"extracurricular activities": sectionOther,
	"activities":                 sectionOther,
	"personal details":           sectionOther,
	"contact":                    sectionOther,
}

// classifyHeader reports which section a line opens, or sectionNone when the
// line is not a recognised header.
func classifyHeader(line string) sectionKind {
	if len(line) > 40 {
		return sectionNone
	}
	h := strings.ToLower(strings.Trim(strings.TrimSpace(line), " :-=#*_|•"))
	h = strings.Join(strings.Fields(h), " ")
	return sectionHeaders[h]
}

var bulletPrefixes = []string{"•", "-", "*", "▪", "●", "◦", "‣", "–", "➢", "►"}

// bulletText strips a leading bullet marker.
func bulletText(line string) (string, bool) {
	for _, prefix := range bulletPrefixes {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// nonEmptyLines splits text into trimmed, non-blank lines.
func nonEmptyLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

const maxSummaryLen = 600

// ExtractSummary returns the text of the summary or objective section.
func ExtractSummary(text string) string {
	var parts []string
	inside := false
	for _, line := range nonEmptyLines(text) {
		switch kind := classifyHeader(line); {
		case kind == sectionSummary:
			inside = true
			continue
		case kind != sectionNone:
			inside = false
			continue
		}
		if inside {
			if b, ok := bulletText(line); ok {
				line = b
			}
			parts = append(parts, line)
		}
	}

	summary := strings.Join(parts, " ")
	if len(summary) > maxSummaryLen {
		summary = strings.TrimSpace(summary[:maxSummaryLen])
	}
	return summary
}

func trimmed(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizedKey(s string) string {
	return strings.ToLower(trimmed(s))
}
