// Package analysis is the public entry point for resume analysis. Every
// operation first tries the language model and falls back to deterministic
// heuristics when the model is unavailable or its answer is unusable. No
// operation returns an error.
package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/campus-match/internal/ai"
	"github.com/spigell/campus-match/internal/logger"
)

const (
	pathMatch       = "match"
	pathProfile     = "profile"
	pathSuggestions = "suggestions"

	matchMaxTokens       = 1024
	profileMaxTokens     = 2048
	suggestionsMaxTokens = 1536
)

// Config holds the timeouts and limits of the AI path.
type Config struct {
	MatchTimeout time.Duration `mapstructure:"match-timeout"`
	// ProfileTimeout bounds the transport call; ProfileDeadline is the hard
	// limit the caller waits for it.
	ProfileTimeout     time.Duration `mapstructure:"profile-timeout"`
	ProfileDeadline    time.Duration `mapstructure:"profile-deadline"`
	SuggestionsTimeout time.Duration `mapstructure:"suggestions-timeout"`
	MaxResumeChars     int           `mapstructure:"max-resume-chars"`
	MaxLogLength       int           `mapstructure:"max-log-length"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MatchTimeout:       30 * time.Second,
		ProfileTimeout:     15 * time.Second,
		ProfileDeadline:    12 * time.Second,
		SuggestionsTimeout: 20 * time.Second,
		MaxResumeChars:     12000,
		MaxLogLength:       200,
	}
}

// Engine orchestrates the AI and fallback paths.
type Engine struct {
	completer ai.Completer
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine builds an Engine. A nil or unconfigured completer puts the engine
// in permanent fallback mode.
func NewEngine(completer ai.Completer, cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if completer != nil {
		log = logger.WithCommonFields(log, completer.Provider(), completer.Model())
	}

	return &Engine{
		completer: completer,
		cfg:       cfg,
		logger:    log,
		now:       time.Now,
	}
}

// Configured reports whether the AI path can be attempted.
func (e *Engine) Configured() bool {
	return e.completer != nil && e.completer.Configured()
}

func (e *Engine) complete(ctx context.Context, path string, req ai.Request) (string, error) {
	if !e.Configured() {
		return "", ai.ErrNotConfigured
	}

	e.logger.Debug("ai completion request", zap.String(logger.FieldPath, path))

	return e.completer.Complete(ctx, req)
}

type completion struct {
	text string
	err  error
}

// completeWithDeadline races the completion against deadline. The call runs
// detached from ctx cancellation so a lost race leaves it to finish on its
// own transport timeout.
func (e *Engine) completeWithDeadline(ctx context.Context, path string, req ai.Request, deadline time.Duration) (string, error) {
	if deadline <= 0 {
		return e.complete(ctx, path, req)
	}
	if !e.Configured() {
		return "", ai.ErrNotConfigured
	}

	done := make(chan completion, 1)
	go func() {
		text, err := e.complete(context.WithoutCancel(ctx), path, req)
		done <- completion{text: text, err: err}
	}()

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case c := <-done:
		return c.text, c.err
	case <-timer.C:
		return "", &ai.UpstreamError{Provider: e.completer.Provider(), Err: ai.ErrDeadlineExceeded}
	case <-ctx.Done():
		return "", &ai.UpstreamError{Provider: e.completer.Provider(), Err: ctx.Err()}
	}
}

func (e *Engine) logFallback(path string, err error) {
	e.logger.Warn("ai path failed, using fallback",
		append(logger.AnalysisFields(path, "fallback", ai.Classify(err).String()), zap.Error(err))...,
	)
}

func (e *Engine) logAI(path, raw string) {
	e.logger.Debug("ai path succeeded",
		append(logger.AnalysisFields(path, "AI", ai.OutcomeOK.String()),
			zap.String("response_preview", logger.Truncate(raw, e.cfg.MaxLogLength)))...,
	)
}

func (e *Engine) resumeForPrompt(text string) string {
	return truncateRunes(text, e.cfg.MaxResumeChars)
}
