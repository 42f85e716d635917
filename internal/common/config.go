package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Gemini   GeminiConfig
	Folders  FolderConfig
	Pipeline PipelineConfig
}

// GeminiConfig holds inference-provider configuration
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int
	Timeout         time.Duration
}

// FolderConfig holds input/output directory configuration
type FolderConfig struct {
	InputDir  string
	OutputDir string
}

// PipelineConfig holds per-run pipeline behavior flags
type PipelineConfig struct {
	ClassificationEnabled bool
	StructuredExtraction  bool
	OutputFormat          string
	MaxWorkers            int
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is applied first when present; real environment
// variables win over it.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.01),
			MaxOutputTokens: getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 8192),
			Timeout:         getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		Folders: FolderConfig{
			InputDir:  getEnv("INPUT_FOLDER", "Data"),
			OutputDir: getEnv("OUTPUT_FOLDER", "Output"),
		},
		Pipeline: PipelineConfig{
			ClassificationEnabled: getEnvAsBool("CLASSIFICATION_ENABLED", true),
			StructuredExtraction:  getEnvAsBool("STRUCTURED_EXTRACTION", true),
			OutputFormat:          getEnv("OUTPUT_FORMAT", "markdown"),
			MaxWorkers:            getEnvAsInt("MAX_WORKERS", 3),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	if c.Folders.InputDir == "" {
		return NewAppError("CONFIG_ERROR", "INPUT_FOLDER is required", ErrInvalidInput)
	}
	if c.Folders.OutputDir == "" {
		return NewAppError("CONFIG_ERROR", "OUTPUT_FOLDER is required", ErrInvalidInput)
	}
	return nil
}
