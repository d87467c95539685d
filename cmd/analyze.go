package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/campus-match/internal/document"
	"github.com/spigell/campus-match/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract a structured profile from a resume",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest improvements for a resume",
	Run: func(cmd *cobra.Command, _ []string) {
		suggest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(suggestCmd)

	for _, c := range []*cobra.Command{analyzeCmd, suggestCmd} {
		c.Flags().String("resume", "", "path to the resume (txt, md, pdf, docx, html)")
		addSaveFlags(c)
		_ = c.MarkFlagRequired("resume")
	}
}

func analyze(cmd *cobra.Command) {
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
	text, err := document.Load(resumePath)
	if err != nil {
		logger.Fatal("loading a resume", zap.Error(err))
	}

	engine, err := newEngine(ctx, config.AI, config.Analysis, logger)
	if err != nil {
		logger.Fatal("creating an analysis engine", zap.Error(err))
	}

	profile := engine.AnalyzeCompleteResume(ctx, text)
	logger.Debug("profile is extracted",
		zap.String("extraction_method", string(profile.Metadata.ExtractionMethod)),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience", len(profile.Experience)),
	)

	if err := printJSON(cmd.OutOrStdout(), profile); err != nil {
		logger.Fatal("writing the profile", zap.Error(err))
	}

	if save {
		persist(ctx, cmd, logger, config.Store, key, "the resume profile", func(rec *store.Record) {
			rec.Profile = &profile
		})
	}
}

func suggest(cmd *cobra.Command) {
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
	text, err := document.Load(resumePath)
	if err != nil {
		logger.Fatal("loading a resume", zap.Error(err))
	}

	engine, err := newEngine(ctx, config.AI, config.Analysis, logger)
	if err != nil {
		logger.Fatal("creating an analysis engine", zap.Error(err))
	}

	suggestions := engine.GenerateImprovementSuggestions(ctx, text)
	if err := printJSON(cmd.OutOrStdout(), suggestions); err != nil {
		logger.Fatal("writing suggestions", zap.Error(err))
	}

	if save {
		persist(ctx, cmd, logger, config.Store, key, "resume suggestions", func(rec *store.Record) {
			rec.Suggestions = suggestions
		})
	}
}
