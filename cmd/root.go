package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/campus-match/internal/analysis"
	"github.com/spigell/campus-match/internal/logger"
)

const (
	app       = "campus-match"
	envPrefix = "CAMPUS_MATCH"
)

type Config struct {
	AI       *AIConfig       `mapstructure:"ai"`
	Analysis *AnalysisConfig `mapstructure:"analysis"`
	Store    *StoreConfig    `mapstructure:"store"`
}

type AIConfig struct {
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	APIKeyEnv  string `mapstructure:"api-key-env"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url"`

	MinCallInterval    time.Duration `mapstructure:"min-call-interval"`
	MatchTimeout       time.Duration `mapstructure:"match-timeout"`
	ProfileTimeout     time.Duration `mapstructure:"profile-timeout"`
	ProfileDeadline    time.Duration `mapstructure:"profile-deadline"`
	SuggestionsTimeout time.Duration `mapstructure:"suggestions-timeout"`
	MaxLogLength       int           `mapstructure:"max-log-length"`
}

type AnalysisConfig struct {
	MaxResumeChars int `mapstructure:"max-resume-chars"`
}

type StoreConfig struct {
	DSN string `mapstructure:"dsn"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "campus-match scores resumes against job descriptions and extracts structured profiles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is campus-match.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	defaults := analysis.DefaultConfig()

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.api-key", "")
	v.SetDefault("ai.api-key-file", "")
	v.SetDefault("ai.api-key-env", "")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.base-url", "")
	v.SetDefault("ai.min-call-interval", time.Second)
	v.SetDefault("ai.match-timeout", defaults.MatchTimeout)
	v.SetDefault("ai.profile-timeout", defaults.ProfileTimeout)
	v.SetDefault("ai.profile-deadline", defaults.ProfileDeadline)
	v.SetDefault("ai.suggestions-timeout", defaults.SuggestionsTimeout)
	v.SetDefault("ai.max-log-length", defaults.MaxLogLength)
	v.SetDefault("analysis.max-resume-chars", defaults.MaxResumeChars)
	v.SetDefault("store.dsn", "")
}

func initConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.Analysis == nil {
		config.Analysis = &AnalysisConfig{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}
	return config, nil
}

// setup builds the logger and config shared by every command.
func setup() (*zap.Logger, *Config) {
	zapLogger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), zap.String("app", app))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zapLogger.Fatal("getting a config", zap.Error(err))
	}

	zapLogger.Debug("starting", zap.String("version", resolveVersion()))
	return zapLogger, config
}
