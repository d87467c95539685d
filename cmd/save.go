package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/campus-match/internal/store"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var errNoStore = errors.New("store.dsn is required to save results")

func addSaveFlags(c *cobra.Command) {
	c.Flags().String("student", "", "student id used when saving the result")
	c.Flags().String("job-id", "", "job id used when saving the result")
	c.Flags().Bool("save", false, "save the result to the store")
	c.Flags().BoolP("yes", "y", false, "save without asking for confirmation")
}

// saveTarget reports whether --save was given and the key to save under.
// It runs before any analysis so a request that cannot be saved fails early.
func saveTarget(cmd *cobra.Command, config *StoreConfig) (store.Key, bool, error) {
	if save, _ := cmd.Flags().GetBool("save"); !save {
		return store.Key{}, false, nil
	}

	student, _ := cmd.Flags().GetString("student")
	jobID, _ := cmd.Flags().GetString("job-id")
	key := store.Key{StudentID: strings.TrimSpace(student), JobID: strings.TrimSpace(jobID)}
	if err := key.Validate(); err != nil {
		return store.Key{}, true, err
	}
	if config == nil || strings.TrimSpace(config.DSN) == "" {
		return store.Key{}, true, errNoStore
	}
	return key, true, nil
}

// persist asks for confirmation unless --yes is set and merges the result
// into the stored record for key.
func persist(ctx context.Context, cmd *cobra.Command, logger *zap.Logger, config *StoreConfig, key store.Key, what string, apply func(*store.Record)) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		ok, err := confirm(fmt.Sprintf("Save %s for student %s and job %s?", what, key.StudentID, key.JobID))
		if err != nil {
			logger.Fatal("reading confirmation", zap.Error(err))
		}
		if !ok {
			logger.Info("result is not saved")
			return
		}
	}

	s, closeStore, err := openStore(ctx, config)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err))
	}
	defer closeStore()

	rec, err := saveRecord(ctx, s, key, apply)
	if err != nil {
		logger.Fatal("saving the result", zap.Error(err))
	}
	logger.Info("result is saved",
		zap.String("id", rec.ID.String()),
		zap.String("student_id", rec.Key.StudentID),
		zap.String("job_id", rec.Key.JobID),
	)
}

// saveRecord applies a change to the record stored under key and writes it
// back, so saving a profile keeps an earlier match for the same pair.
func saveRecord(ctx context.Context, s store.Store, key store.Key, apply func(*store.Record)) (store.Record, error) {
	rec, err := s.Get(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		rec = store.Record{Key: key}
	case err != nil:
		return store.Record{}, err
	}

	apply(&rec)
	return s.Upsert(ctx, rec)
}

func confirm(label string) (bool, error) {
	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return false, err
	}
	return selected == PromptYes, nil
}
