package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/campus-match/internal/matching"
)

func TestMatchesWritesRankedRows(t *testing.T) {
	rows := []Row{
		{Job: "ops.txt", Result: matching.Result{MatchScore: 20, Explanation: "weak", SkillsGap: []string{"logistics"}}},
		{Job: "backend.txt", Result: matching.Result{MatchScore: 85, Explanation: "strong", SkillsMatched: []string{"python", "sql"}}},
	}

	path, err := Matches(rows, filepath.Join(t.TempDir(), "report"))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, matchesSheet}, f.GetSheetList())

	header, err := f.GetCellValue(matchesSheet, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Match Score", header)

	first, err := f.GetCellValue(matchesSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "backend.txt", first)

	matched, err := f.GetCellValue(matchesSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "python, sql", matched)

	score, err := f.GetCellValue(matchesSheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "20", score)

	best, err := f.GetCellValue(summarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "backend.txt", best)

	average, err := f.GetCellValue(summarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "52.5", average)

	// Input order is left untouched.
	assert.Equal(t, "ops.txt", rows[0].Job)
}

func TestMatchesEmpty(t *testing.T) {
	path, err := Matches(nil, filepath.Join(t.TempDir(), "empty.xlsx"))
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	count, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "0", count)
}
