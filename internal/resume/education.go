package resume

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type degreePattern struct {
	pattern *regexp.Regexp
	name    string
}

// degreePatterns are tried in order; more specific forms come first.
var degreePatterns = []degreePattern{
	{regexp.MustCompile(`(?i)\b(?:ph\.?\s?d|doctor(?:ate)? of philosophy)\b`), "PhD"},
	{regexp.MustCompile(`(?i)\b(?:m\.?\s?tech|master of technology)\b`), "M.Tech"},
	{regexp.MustCompile(`(?i)\b(?:mba|master of business administration)\b`), "MBA"},
	{regexp.MustCompile(`(?i)\b(?:m\.?\s?sc|master of science)\b`), "M.Sc"},
	{regexp.MustCompile(`(?i)\bmaster'?s?\b`), "Master's"},
	{regexp.MustCompile(`(?i)\b(?:b\.?\s?tech|bachelor of technology)\b`), "B.Tech"},
	{regexp.MustCompile(`(?i)\b(?:b\.\s?e\.|bachelor of engineering)`), "B.E."},
	{regexp.MustCompile(`(?i)\b(?:b\.?\s?sc|bachelor of science)\b`), "B.Sc"},
	{regexp.MustCompile(`(?i)\b(?:bca|bachelor of computer applications)\b`), "BCA"},
	{regexp.MustCompile(`(?i)\b(?:b\.?\s?com|bachelor of commerce)\b`), "B.Com"},
	{regexp.MustCompile(`(?i)\bbachelor'?s?\b`), "Bachelor's"},
	{regexp.MustCompile(`(?i)\bdiploma\b`), "Diploma"},
	{regexp.MustCompile(`(?i)\b(?:higher secondary|hsc|class xii|12th)\b`), "Higher Secondary"},
}

var fieldAbbreviations = map[string]string{
	"cse":   "Computer Science Engineering",
	"cs":    "Computer Science",
	"ece":   "Electronics and Communication Engineering",
	"eee":   "Electrical and Electronics Engineering",
	"ee":    "Electrical Engineering",
	"it":    "Information Technology",
	"mech":  "Mechanical Engineering",
	"civil": "Civil Engineering",
}

var (
	yearRangePattern   = regexp.MustCompile(`(?i)\b(` + yearExpr + `)\s*(?:-|–|—|\bto\b)\s*(` + yearExpr + `|present|current|now|ongoing)\b`)
	gpaPattern         = regexp.MustCompile(`(?i)\b(?:c?gpa|cpi|grade)\s*[:\-]?\s*(\d{1,2}(?:\.\d{1,2})?(?:\s*/\s*\d{1,2}(?:\.\d+)?)?)`)
	percentPattern     = regexp.MustCompile(`\b(\d{2}(?:\.\d{1,2})?)\s*%`)
	institutionPattern = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic|iit|nit|iiit|bits)\b`)
	fieldLeadPattern   = regexp.MustCompile(`(?i)^(?:in|of)\s+`)
)

// educationParser is the accumulator threaded through stepEducation.
type educationParser struct {
	state   parseState
	current Education
	// pending holds an institution line seen before its degree line.
	pending string
}

// ExtractEducation reads entries from the education sections of text.
func ExtractEducation(text string) []Education {
	entries := make([]Education, 0)
	var p educationParser

	for _, line := range nonEmptyLines(text) {
		next, done, emitted := stepEducation(p, line)
		if emitted {
			entries = append(entries, finishEducation(done))
		}
		p = next
	}
	if p.state == stateCollecting {
		entries = append(entries, finishEducation(p.current))
	}

	return entries
}

func stepEducation(p educationParser, line string) (next educationParser, done Education, emitted bool) {
	kind := classifyHeader(line)

	if p.state == stateOutside {
		if kind == sectionEducation {
			return educationParser{state: stateInSection}, Education{}, false
		}
		return p, Education{}, false
	}

	collecting := p.state == stateCollecting

	switch {
	case kind == sectionEducation:
		return educationParser{state: stateInSection}, p.current, collecting
	case kind != sectionNone:
		return educationParser{state: stateOutside}, p.current, collecting
	}

	if text, ok := bulletText(line); ok {
		line = text
	}

	if entry, ok := newEducation(line); ok {
		if entry.Institution == "" {
			entry.Institution = p.pending
		}
		return educationParser{state: stateCollecting, current: entry}, p.current, collecting
	}

	if !collecting {
		if looksLikeInstitution(line) {
			p.pending = cleanInstitution(line)
		}
		return p, Education{}, false
	}

	if looksLikeInstitution(line) {
		if p.current.Institution == "" {
			p.current.Institution = cleanInstitution(line)
		} else {
			p.pending = cleanInstitution(line)
			return p, Education{}, false
		}
	}
	fillYears(&p.current, line)
	if p.current.GPA == "" {
		p.current.GPA = findGPA(line)
	}
	return p, Education{}, false
}

// newEducation starts an entry when line names a degree.
func newEducation(line string) (Education, bool) {
	for _, dp := range degreePatterns {
		loc := dp.pattern.FindStringIndex(line)
		if loc == nil {
			continue
		}

		entry := Education{Degree: dp.name}
		rest := line[loc[1]:]

		parts := strings.Split(rest, ",")
		entry.Field = normalizeField(parts[0])
		for _, part := range parts[1:] {
			if looksLikeInstitution(part) {
				entry.Institution = cleanInstitution(part)
				break
			}
		}
		fillYears(&entry, line)
		entry.GPA = findGPA(line)
		return entry, true
	}
	return Education{}, false
}

func normalizeField(text string) string {
	if loc := yearRangePattern.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	text = strings.TrimLeft(text, " \t.:-–(")
	text = fieldLeadPattern.ReplaceAllString(text, "")
	if i := strings.IndexAny(text, "|()"); i >= 0 {
		text = text[:i]
	}
	text = strings.Trim(text, " \t.:-–")
	if full, ok := fieldAbbreviations[strings.ToLower(text)]; ok {
		return full
	}
	return text
}

func fillYears(entry *Education, line string) {
	if entry.StartYear != "" || entry.EndYear != "" {
		return
	}
	if m := yearRangePattern.FindStringSubmatch(line); m != nil {
		entry.StartYear = m[1]
		entry.EndYear, _ = normalizeDate(m[2])
		return
	}
	if years := yearPattern.FindAllString(line, -1); len(years) == 1 {
		entry.EndYear = years[0]
	}
}

func findGPA(line string) string {
	if m := gpaPattern.FindStringSubmatch(line); m != nil {
		return strings.Join(strings.Fields(m[1]), "")
	}
	if m := percentPattern.FindStringSubmatch(line); m != nil {
		return m[1] + "%"
	}
	return ""
}

func looksLikeInstitution(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) > 120 || gpaPattern.MatchString(line) {
		return false
	}
	if institutionPattern.MatchString(line) {
		return true
	}
	return isAllCaps(line)
}

// isAllCaps reports whether line has at least three letters and none of them
// is lowercase.
func isAllCaps(line string) bool {
	letters := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 3
}

func cleanInstitution(line string) string {
	if loc := yearRangePattern.FindStringIndex(line); loc != nil {
		line = line[:loc[0]] + line[loc[1]:]
	}
	if loc := gpaPattern.FindStringIndex(line); loc != nil {
		line = line[:loc[0]] + line[loc[1]:]
	}
	return strings.Join(strings.Fields(trimSeparators(line)), " ")
}

// finishEducation decides completion: an open or future end year means the
// degree is still in progress.
func finishEducation(entry Education) Education {
	entry.IsCompleted = true
	switch {
	case strings.EqualFold(entry.EndYear, presentLabel):
		entry.IsCompleted = false
	case entry.EndYear != "":
		if year, err := strconv.Atoi(entry.EndYear); err == nil && year > now().Year() {
			entry.IsCompleted = false
		}
	}
	return entry
}
