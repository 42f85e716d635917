package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TEMPERATURE",
		"GEMINI_MAX_OUTPUT_TOKENS", "GEMINI_TIMEOUT",
		"INPUT_FOLDER", "OUTPUT_FOLDER",
		"CLASSIFICATION_ENABLED", "STRUCTURED_EXTRACTION",
		"OUTPUT_FORMAT", "MAX_WORKERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig()

	assert.Equal(t, "gemini-2.0-flash-exp", cfg.Gemini.Model)
	assert.Equal(t, float32(0.01), cfg.Gemini.Temperature)
	assert.Equal(t, 8192, cfg.Gemini.MaxOutputTokens)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "Data", cfg.Folders.InputDir)
	assert.Equal(t, "Output", cfg.Folders.OutputDir)
	assert.True(t, cfg.Pipeline.ClassificationEnabled)
	assert.True(t, cfg.Pipeline.StructuredExtraction)
	assert.Equal(t, "markdown", cfg.Pipeline.OutputFormat)
	assert.Equal(t, 3, cfg.Pipeline.MaxWorkers)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("GEMINI_TIMEOUT", "90s")
	t.Setenv("CLASSIFICATION_ENABLED", "false")
	t.Setenv("OUTPUT_FORMAT", "json")
	t.Setenv("MAX_WORKERS", "2")

	cfg := LoadConfig()
	assert.Equal(t, "key-123", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 90*time.Second, cfg.Gemini.Timeout)
	assert.False(t, cfg.Pipeline.ClassificationEnabled)
	assert.Equal(t, "json", cfg.Pipeline.OutputFormat)
	assert.Equal(t, 2, cfg.Pipeline.MaxWorkers)
}

func TestLoadConfig_MalformedValuesFallBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_MAX_OUTPUT_TOKENS", "lots")
	t.Setenv("GEMINI_TIMEOUT", "soon")
	t.Setenv("STRUCTURED_EXTRACTION", "yep")

	cfg := LoadConfig()
	assert.Equal(t, 8192, cfg.Gemini.MaxOutputTokens)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.True(t, cfg.Pipeline.StructuredExtraction)
}

func TestConfig_Validate(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig()

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)

	cfg.Gemini.APIKey = "key"
	require.NoError(t, cfg.Validate())

	cfg.Folders.OutputDir = ""
	assert.Error(t, cfg.Validate())
}

func TestErrInference_MatchesThroughAppError(t *testing.T) {
	err := NewAppError("INFERENCE_ERROR", "no candidates", ErrInference)
	assert.True(t, errors.Is(err, ErrInference))
	assert.Contains(t, err.Error(), "INFERENCE_ERROR")
}
