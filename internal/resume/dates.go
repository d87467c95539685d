package resume

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// now is swapped in tests.
var now = time.Now

const (
	monthExpr   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	yearExpr    = `(?:19|20)\d{2}`
	dateExpr    = `(?:` + monthExpr + `\.?,?\s+` + yearExpr + `|\d{1,2}/` + yearExpr + `|` + yearExpr + `)`
	presentExpr = `(?:present|current|now|ongoing|till date|to date)`
)

var (
	dateRangePattern = regexp.MustCompile(`(?i)\b(` + dateExpr + `)\s*(?:-|–|—|\bto\b|\buntil\b)\s*(` + dateExpr + `|` + presentExpr + `)\b`)
	monthYearPattern = regexp.MustCompile(`(?i)^(` + monthExpr + `)\.?,?\s+(` + yearExpr + `)$`)
	numericPattern   = regexp.MustCompile(`^(\d{1,2})/(` + yearExpr + `)$`)
	yearPattern      = regexp.MustCompile(`\b` + yearExpr + `\b`)
	presentPattern   = regexp.MustCompile(`(?i)^` + presentExpr + `$`)
)

const presentLabel = "Present"

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

type dateRange struct {
	start, end int // byte offsets of the whole match
	from, to   string
}

func findDateRange(line string) (dateRange, bool) {
	m := dateRangePattern.FindStringSubmatchIndex(line)
	if m == nil {
		return dateRange{}, false
	}
	return dateRange{
		start: m[0],
		end:   m[1],
		from:  line[m[2]:m[3]],
		to:    line[m[4]:m[5]],
	}, true
}

// normalizeDate rewrites a date token to YYYY or YYYY-MM. Open ended tokens
// become "Present" and report current=true. Unknown tokens are returned as is.
func normalizeDate(token string) (date string, current bool) {
	token = strings.TrimSpace(token)
	switch {
	case presentPattern.MatchString(token):
		return presentLabel, true
	case monthYearPattern.MatchString(token):
		m := monthYearPattern.FindStringSubmatch(token)
		month := monthNumbers[strings.ToLower(m[1])[:3]]
		return fmt.Sprintf("%s-%02d", m[2], month), false
	case numericPattern.MatchString(token):
		m := numericPattern.FindStringSubmatch(token)
		month, _ := strconv.Atoi(m[1])
		if month < 1 || month > 12 {
			return m[2], false
		}
		return fmt.Sprintf("%s-%02d", m[2], month), false
	}
	if year := yearPattern.FindString(token); year != "" {
		return year, false
	}
	return token, false
}

// parseYearMonth reads a normalised date. Year-only dates count from January
// and "Present" resolves to the current month.
func parseYearMonth(date string) (year, month int, ok bool) {
	if strings.EqualFold(date, presentLabel) {
		t := now()
		return t.Year(), int(t.Month()), true
	}

	yearPart, monthPart, hasMonth := strings.Cut(date, "-")
	year, err := strconv.Atoi(yearPart)
	if err != nil || len(yearPart) != 4 {
		return 0, 0, false
	}
	if !hasMonth {
		return year, 1, true
	}
	month, err = strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
