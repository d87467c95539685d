package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/campus-match/internal/ai"
	"github.com/spigell/campus-match/internal/ai/gemini"
	"github.com/spigell/campus-match/internal/ai/openrouter"
	"github.com/spigell/campus-match/internal/analysis"
	"github.com/spigell/campus-match/internal/logger"
	"github.com/spigell/campus-match/internal/ratelimit"
	"github.com/spigell/campus-match/internal/secrets"
	"github.com/spigell/campus-match/internal/store"
	"github.com/spigell/campus-match/internal/store/postgres"
)

const (
	providerGemini     = "gemini"
	providerOpenRouter = "openrouter"
)

var defaultKeyEnv = map[string]string{
	providerGemini:     "GEMINI_API_KEY",
	providerOpenRouter: "OPENROUTER_API_KEY",
}

func newEngine(ctx context.Context, config *AIConfig, analysisConfig *AnalysisConfig, log *zap.Logger) (*analysis.Engine, error) {
	completer, err := newCompleter(ctx, config, log)
	if err != nil {
		return nil, err
	}

	engineConfig := analysis.DefaultConfig()
	if config.MatchTimeout > 0 {
		engineConfig.MatchTimeout = config.MatchTimeout
	}
	if config.ProfileTimeout > 0 {
		engineConfig.ProfileTimeout = config.ProfileTimeout
	}
	if config.ProfileDeadline > 0 {
		engineConfig.ProfileDeadline = config.ProfileDeadline
	}
	if config.SuggestionsTimeout > 0 {
		engineConfig.SuggestionsTimeout = config.SuggestionsTimeout
	}
	if config.MaxLogLength > 0 {
		engineConfig.MaxLogLength = config.MaxLogLength
	}
	if analysisConfig != nil && analysisConfig.MaxResumeChars > 0 {
		engineConfig.MaxResumeChars = analysisConfig.MaxResumeChars
	}

	return analysis.NewEngine(completer, engineConfig, log), nil
}

// newCompleter resolves the credential and builds the configured provider.
// A missing credential is not an error: the returned completer is simply
// unconfigured and every analysis takes the heuristic path.
func newCompleter(ctx context.Context, config *AIConfig, log *zap.Logger) (ai.Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	if provider == "" {
		provider = providerGemini
	}

	keyEnv, ok := defaultKeyEnv[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported ai provider %q", config.Provider)
	}
	if config.APIKeyEnv != "" {
		keyEnv = config.APIKeyEnv
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  provider + " api key",
		File:  config.APIKeyFile,
		Env:   keyEnv,
		Value: config.APIKey,
	})
	switch {
	case errors.Is(err, secrets.ErrNotConfigured):
		log.Warn("ai credential is not configured; using heuristics only", zap.String(logger.FieldProvider, provider))
		apiKey = ""
	case err != nil:
		return nil, err
	}

	limiter := ratelimit.New(config.MinCallInterval)

	switch provider {
	case providerOpenRouter:
		return openrouter.New(openrouter.Options{
			APIKey:       apiKey,
			BaseURL:      config.BaseURL,
			Model:        config.Model,
			AppTitle:     app,
			Limiter:      limiter,
			Logger:       log,
			MaxLogLength: config.MaxLogLength,
		}), nil
	default:
		client, err := gemini.New(ctx, gemini.Options{
			APIKey:       apiKey,
			Model:        config.Model,
			Limiter:      limiter,
			Logger:       log,
			MaxLogLength: config.MaxLogLength,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// openStore connects to the postgres repository. The returned func releases
// the pool.
func openStore(ctx context.Context, config *StoreConfig) (store.Store, func(), error) {
	if config == nil || strings.TrimSpace(config.DSN) == "" {
		return nil, nil, errNoStore
	}

	pool, err := postgres.Connect(ctx, config.DSN)
	if err != nil {
		return nil, nil, err
	}
	repo, err := postgres.NewRepository(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
