package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldPath names the analysis entry point (match, profile, suggestions).
	FieldPath = "analysis_path"
	// FieldMethod records whether a result came from the AI or the fallback path.
	FieldMethod = "extraction_method"
	// FieldOutcome carries the tagged outcome of an AI attempt.
	FieldOutcome = "ai_outcome"
)

// StringField is a key/value pair destined for a zap string field.
type StringField struct {
	Key   string
	Value string
}

// StringFields turns pairs into zap fields, skipping blank keys and values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields describes the AI provider and model serving a request.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// AnalysisFields describes one orchestrator decision.
func AnalysisFields(path, method, outcome string) []zap.Field {
	return StringFields(
		StringField{Key: FieldPath, Value: path},
		StringField{Key: FieldMethod, Value: method},
		StringField{Key: FieldOutcome, Value: outcome},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}
