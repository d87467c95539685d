package resume

import (
	"regexp"
	"strings"
)

type parseState int

const (
	stateOutside parseState = iota
	stateInSection
	stateCollecting
)

const recentLines = 3

var (
	jobTitlePattern = regexp.MustCompile(`(?i)\b(engineer|developer|intern|manager|analyst|consultant|designer|architect|lead|director|officer|associate|executive|specialist|coordinator|administrator|scientist|trainee|assistant|head|president|founder|programmer|tester|technician|supervisor|representative|accountant|volunteer)\b`)
	atPattern       = regexp.MustCompile(`(?i)\s+(?:at|@)\s+`)
)

// experienceParser is the accumulator threaded through stepExperience.
type experienceParser struct {
	state   parseState
	current Experience
	recent  []string
}

// ExtractExperience reads entries from the experience sections of text, in
// the order they appear.
func ExtractExperience(text string) []Experience {
	entries := make([]Experience, 0)
	var p experienceParser

	for _, line := range nonEmptyLines(text) {
		next, done, emitted := stepExperience(p, line)
		if emitted {
			entries = append(entries, done)
		}
		p = next
	}
	if p.state == stateCollecting {
		entries = append(entries, p.current)
	}

	return entries
}

// stepExperience advances the parser by one line. When the line closes an
// entry the finished entry is returned with emitted=true.
func stepExperience(p experienceParser, line string) (next experienceParser, done Experience, emitted bool) {
	kind := classifyHeader(line)

	if p.state == stateOutside {
		if kind == sectionExperience {
			return experienceParser{state: stateInSection}, Experience{}, false
		}
		return p, Experience{}, false
	}

	collecting := p.state == stateCollecting

	switch {
	case kind == sectionExperience:
		return experienceParser{state: stateInSection}, p.current, collecting
	case kind != sectionNone:
		return experienceParser{state: stateOutside}, p.current, collecting
	}

	if text, ok := bulletText(line); ok {
		if collecting && text != "" {
			p.current.Description = appendLine(p.current.Description, text)
			p.recent = nil
		}
		return p, Experience{}, false
	}

	if dr, ok := findDateRange(line); ok {
		entry := newExperience(line, dr, p.recent)
		return experienceParser{state: stateCollecting, current: entry}, p.current, collecting
	}

	// A header line that follows its date range.
	if collecting && p.current.Description == "" && p.current.Title == DefaultTitle {
		switch {
		case p.current.Company == "":
			p.current.Title, p.current.Company = splitTitleCompany(line)
			return p, Experience{}, false
		case jobTitlePattern.MatchString(line):
			p.current.Title, _ = splitTitleCompany(line)
			return p, Experience{}, false
		}
	}

	p.recent = appendRecent(p.recent, line)
	return p, Experience{}, false
}

func newExperience(line string, dr dateRange, recent []string) Experience {
	var entry Experience
	entry.StartDate, _ = normalizeDate(dr.from)
	entry.EndDate, entry.IsCurrentJob = normalizeDate(dr.to)

	prefix := trimSeparators(line[:dr.start])
	suffix := trimSeparators(line[dr.end:])

	if prefix != "" {
		if parts := atPattern.Split(prefix, 2); len(parts) == 2 {
			entry.Title = strings.TrimSpace(parts[0])
			entry.Company, entry.Location = splitCompanyLocation(parts[1])
		} else {
			parts := splitComma(prefix)
			if len(parts) > 1 && jobTitlePattern.MatchString(parts[0]) {
				entry.Title = parts[0]
				parts = parts[1:]
			}
			entry.Company = parts[0]
			entry.Location = strings.Join(parts[1:], ", ")
		}
	}
	if entry.Location == "" {
		entry.Location = suffix
	}

	for i := len(recent) - 1; i >= 0; i-- {
		candidate := recent[i]
		switch {
		case entry.Title == "" && jobTitlePattern.MatchString(candidate):
			title, company := splitTitleCompany(candidate)
			entry.Title = title
			if entry.Company == "" {
				entry.Company = company
			}
		case entry.Company == "" && !jobTitlePattern.MatchString(candidate):
			company, location := splitCompanyLocation(candidate)
			entry.Company = company
			if entry.Location == "" {
				entry.Location = location
			}
		}
	}

	if entry.Title == "" {
		entry.Title = DefaultTitle
	}
	return entry
}

// splitTitleCompany splits "Title at Company" or "Title, Company".
func splitTitleCompany(line string) (title, company string) {
	if parts := atPattern.Split(line, 2); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	parts := splitComma(line)
	if len(parts) > 1 {
		return parts[0], parts[1]
	}
	if jobTitlePattern.MatchString(line) {
		return strings.TrimSpace(line), ""
	}
	return DefaultTitle, strings.TrimSpace(line)
}

func splitCompanyLocation(text string) (company, location string) {
	parts := splitComma(text)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], ", ")
}

func splitComma(text string) []string {
	raw := strings.Split(text, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if part = trimSeparators(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func trimSeparators(text string) string {
	return strings.Trim(text, " \t|,-–—:()")
}

func appendLine(text, line string) string {
	if text == "" {
		return line
	}
	return text + "\n" + line
}

func appendRecent(recent []string, line string) []string {
	out := make([]string, 0, recentLines)
	if len(recent) >= recentLines {
		recent = recent[len(recent)-recentLines+1:]
	}
	out = append(out, recent...)
	return append(out, line)
}
