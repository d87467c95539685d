// Package export writes match reports as spreadsheets.
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/campus-match/internal/matching"
)

const (
	summarySheet = "Summary"
	matchesSheet = "Matches"
)

// Row is one job scored against the resume.
type Row struct {
	Job    string
	Result matching.Result
}

var matchHeaders = []string{"Rank", "Job", "Match Score", "Skills Matched", "Skills Gap", "Explanation"}

// Matches writes rows, best score first, to an .xlsx file at path. The
// extension is added when missing. It returns the path written.
func Matches(rows []Row, path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	ranked := make([]Row, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.MatchScore > ranked[j].Result.MatchScore
	})

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(matchesSheet); err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummary(f, header, ranked); err != nil {
		return "", fmt.Errorf("write summary sheet: %w", err)
	}
	if err := writeMatches(f, header, ranked); err != nil {
		return "", fmt.Errorf("write matches sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func writeSummary(f *excelize.File, header int, rows []Row) error {
	_ = f.SetColWidth(summarySheet, "A", "A", 24)
	_ = f.SetColWidth(summarySheet, "B", "B", 40)

	var total int
	for _, row := range rows {
		total += row.Result.MatchScore
	}
	average := 0.0
	best := ""
	if len(rows) > 0 {
		average = float64(total) / float64(len(rows))
		best = rows[0].Job
	}

	pairs := [][2]any{
		{"Match Report", ""},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{"Jobs Scored", len(rows)},
		{"Average Score", fmt.Sprintf("%.1f", average)},
		{"Best Match", best},
	}
	for i, pair := range pairs {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &[]any{pair[0], pair[1]}); err != nil {
			return err
		}
	}
	return f.SetCellStyle(summarySheet, "A1", "B1", header)
}

func writeMatches(f *excelize.File, header int, rows []Row) error {
	_ = f.SetColWidth(matchesSheet, "A", "A", 6)
	_ = f.SetColWidth(matchesSheet, "B", "B", 30)
	_ = f.SetColWidth(matchesSheet, "C", "C", 12)
	_ = f.SetColWidth(matchesSheet, "D", "E", 30)
	_ = f.SetColWidth(matchesSheet, "F", "F", 60)

	headers := make([]any, len(matchHeaders))
	for i, h := range matchHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(matchesSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(matchesSheet, "A1", "F1", header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			i + 1,
			row.Job,
			row.Result.MatchScore,
			strings.Join(row.Result.SkillsMatched, ", "),
			strings.Join(row.Result.SkillsGap, ", "),
			row.Result.Explanation,
		}
		if err := f.SetSheetRow(matchesSheet, cell, &values); err != nil {
			return err
		}
	}

	if len(rows) > 0 {
		if err := f.AutoFilter(matchesSheet, fmt.Sprintf("A1:F%d", len(rows)+1), []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}
	return f.SetPanes(matchesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
