package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/campus-match/internal/document"
	"github.com/spigell/campus-match/internal/export"
	"github.com/spigell/campus-match/internal/filtering"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a resume against every job description in a directory and write an Excel report",
	Run: func(cmd *cobra.Command, _ []string) {
		batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("resume", "", "path to the resume (txt, md, pdf, docx, html)")
	batchCmd.Flags().String("jobs", "", "directory with job descriptions")
	batchCmd.Flags().String("out", "report.xlsx", "path of the Excel report")
	batchCmd.Flags().String("exclude-file", "", "file with job names to skip, one per line")
	batchCmd.Flags().Int("min-score", 0, "drop jobs scoring below this value from the report")

	_ = batchCmd.MarkFlagRequired("resume")
	_ = batchCmd.MarkFlagRequired("jobs")
}

type batchSummary struct {
	Job        string `json:"job"`
	MatchScore int    `json:"matchScore"`
}

func batch(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger, config := setup()
	defer func() { _ = logger.Sync() }()

	resumePath, _ := cmd.Flags().GetString("resume")
	jobsDir, _ := cmd.Flags().GetString("jobs")
	out, _ := cmd.Flags().GetString("out")

	resumeText, err := document.Load(resumePath)
	if err != nil {
		logger.Fatal("loading a resume", zap.Error(err))
	}

	jobs, err := loadJobs(jobsDir, logger)
	if err != nil {
		logger.Fatal("loading job descriptions", zap.Error(err))
	}
	if len(jobs) == 0 {
		logger.Fatal("no job descriptions found", zap.String("dir", jobsDir))
	}

	engine, err := newEngine(ctx, config.AI, config.Analysis, logger)
	if err != nil {
		logger.Fatal("creating an analysis engine", zap.Error(err))
	}

	excludeFile, _ := cmd.Flags().GetString("exclude-file")
	minScore, _ := cmd.Flags().GetInt("min-score")
	steps := []filtering.Filter{
		filtering.NewExcludeFile(excludeFile),
		filtering.NewMatchScore(minScore),
	}
	if excludeFile == "" {
		filtering.DisableByName(steps, "exclude_file", "no exclude file given")
	}
	for _, status := range filtering.Describe(steps) {
		logger.Info("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	jobs, err = filtering.Run(ctx, filtering.Deps{Logger: logger, Resume: resumeText, Scorer: engine}, steps, jobs)
	if err != nil {
		logger.Fatal("screening jobs", zap.Error(err))
	}

	rows := make([]export.Row, 0, len(jobs))
	summary := make([]batchSummary, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, export.Row{Job: job.Name, Result: *job.Result})
		summary = append(summary, batchSummary{Job: job.Name, MatchScore: job.Result.MatchScore})
	}

	written, err := export.Matches(rows, out)
	if err != nil {
		logger.Fatal("writing the report", zap.Error(err))
	}
	logger.Info("report is written", zap.String("path", written), zap.Int("jobs", len(rows)))

	if err := printJSON(cmd.OutOrStdout(), summary); err != nil {
		logger.Fatal("writing the summary", zap.Error(err))
	}
}

// loadJobs reads every supported document in dir, sorted by file name.
// Hidden files and unsupported formats are skipped.
func loadJobs(dir string, logger *zap.Logger) ([]filtering.Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	jobs := make([]filtering.Job, 0, len(names))
	for _, name := range names {
		text, err := document.Load(filepath.Join(dir, name))
		if errors.Is(err, document.ErrUnsupportedFormat) {
			logger.Debug("skipping unsupported file", zap.String("file", name))
			continue
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			logger.Debug("skipping empty file", zap.String("file", name))
			continue
		}
		jobs = append(jobs, filtering.Job{Name: strings.TrimSuffix(name, filepath.Ext(name)), Text: text})
	}
	return jobs, nil
}
