package filtering

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
)

type matchScoreFilter struct {
	minimum  int
	disabled bool
	reason   string
}

// NewMatchScore creates the scoring step. Every job gets a Result and jobs
// scoring below minimum are dropped.
func NewMatchScore(minimum int) Filter {
	return &matchScoreFilter{minimum: minimum}
}

func (f *matchScoreFilter) Name() string { return "match_score" }

func (f *matchScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *matchScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *matchScoreFilter) Apply(ctx context.Context, deps Deps, jobs []Job) ([]Job, Step, error) {
	initial := len(jobs)
	if deps.Scorer == nil {
		return jobs, Step{}, errors.New("scorer is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	approved := make([]Job, 0, initial)
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return jobs, Step{}, err
		}

		result := deps.Scorer.AnalyzeResumeMatch(ctx, deps.Resume, job.Text)
		job.Result = &result

		if result.MatchScore < f.minimum {
			logger.Info("job rejected by match score",
				zap.String("job", job.Name),
				zap.Int("match_score", result.MatchScore),
				zap.Int("minimum", f.minimum),
			)
			continue
		}

		logger.Info("job is scored",
			zap.String("job", job.Name),
			zap.Int("match_score", result.MatchScore),
		)
		approved = append(approved, job)
	}

	return approved, Step{Initial: initial, Dropped: initial - len(approved), Left: len(approved)}, nil
}

func (f *matchScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.minimum)},
	}
}
