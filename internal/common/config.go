package common

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/invoice-parser/constants"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Extraction ExtractionConfig
	OCR        OCRConfig
	LLM        LLMConfig
	LogLevel   slog.Level
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr        string
	MaxUploadMB     int
	ShutdownTimeout time.Duration
}

// ExtractionConfig holds the text-vs-image decision and reply budget
type ExtractionConfig struct {
	TextThreshold int
	MaxTokens     int
	TextExtractor string // native | poppler | auto
}

// OCRConfig holds the external poppler tools and rendering knobs
type OCRConfig struct {
	Pdftotext     string
	Pdftoppm      string
	DPI           int
	MaxImageWidth int
}

// LLMConfig holds model client configuration
type LLMConfig struct {
	Provider string // anthropic | openai | ollama | mistral
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", "anthropic"))
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			MaxUploadMB:     getEnvAsInt("MAX_UPLOAD_MB", 20),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Extraction: ExtractionConfig{
			TextThreshold: getEnvAsInt("TEXT_THRESHOLD", constants.TextModeThreshold),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", constants.DefaultMaxTokens),
			TextExtractor: strings.ToLower(getEnv("TEXT_EXTRACTOR", "auto")),
		},
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			DPI:           getEnvAsInt("RENDER_DPI", constants.DefaultRenderDPI),
			MaxImageWidth: getEnvAsInt("MAX_IMAGE_WIDTH", constants.DefaultMaxImageWidth),
		},
		LLM: LLMConfig{
			Provider: provider,
			Model:    getEnv("LLM_MODEL", defaultModelFor(provider)),
			APIKey:   getEnv(apiKeyEnvFor(provider), ""),
			BaseURL:  getEnv("LLM_BASE_URL", ""),
			Timeout:  getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		LogLevel: getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func defaultModelFor(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4o-mini"
	case "ollama":
		return "llama3.2-vision"
	case "mistral":
		return "pixtral-12b-2409"
	default:
		return constants.DefaultModel
	}
}

// apiKeyEnvFor names the env var holding the credential for a provider.
func apiKeyEnvFor(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "mistral":
		return "MISTRAL_API_KEY"
	case "ollama":
		return "OLLAMA_API_KEY"
	default:
		return "ANTHROPIC_API_KEY"
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(value)); err == nil {
			return lvl
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("LLM_PROVIDER", c.LLM.Provider, OneOf("anthropic", "openai", "ollama", "mistral")).
		Field("LLM_MODEL", c.LLM.Model, Required).
		Field("TEXT_EXTRACTOR", c.Extraction.TextExtractor, OneOf("native", "poppler", "auto")).
		Field("LLM_MAX_TOKENS", c.Extraction.MaxTokens, Positive).
		Field("TEXT_THRESHOLD", c.Extraction.TextThreshold, Positive).
		Field("RENDER_DPI", c.OCR.DPI, Positive).
		Field("MAX_IMAGE_WIDTH", c.OCR.MaxImageWidth, NonNegative).
		Field("MAX_UPLOAD_MB", c.Server.MaxUploadMB, Positive)
	if c.LLM.Provider != "ollama" {
		v.Field(apiKeyEnvFor(c.LLM.Provider), c.LLM.APIKey, Required)
	}
	if v.HasErrors() {
		return NewAppError(constants.CodeConfig, v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
