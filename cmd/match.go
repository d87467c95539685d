package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/campus-match/internal/document"
	"github.com/spigell/campus-match/internal/store"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("resume", "", "path to the resume (txt, md, pdf, docx, html)")
	matchCmd.Flags().String("job", "", "path to the job description")
	addSaveFlags(matchCmd)

	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("job")
}

func match(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger, config := setup()
	defer func() { _ = logger.Sync() }()

	key, save, err := saveTarget(cmd, config.Store)
	if err != nil {
		logger.Fatal("checking save options", zap.Error(err))
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")

	resumeText, err := document.Load(resumePath)
	if err != nil {
		logger.Fatal("loading a resume", zap.Error(err))
	}
	jobText, err := document.Load(jobPath)
	if err != nil {
		logger.Fatal("loading a job description", zap.Error(err))
	}

	engine, err := newEngine(ctx, config.AI, config.Analysis, logger)
	if err != nil {
		logger.Fatal("creating an analysis engine", zap.Error(err))
	}

	result := engine.AnalyzeResumeMatch(ctx, resumeText, jobText)
	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		logger.Fatal("writing the result", zap.Error(err))
	}

	if save {
		persist(ctx, cmd, logger, config.Store, key, fmt.Sprintf("match score %d", result.MatchScore), func(rec *store.Record) {
			rec.Match = &result
		})
	}
}
