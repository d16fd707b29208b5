// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AI provider names accepted in AI_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// Log output formats accepted in LOG_FORMAT.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds all configuration for the application.
type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	AIProvider       string
	GeminiAPIKey     string
	OpenAIAPIKey     string
	ClaudeAPIKey     string
	ExchangeRateURL  string
	OTLPEndpoint     string
	PendingTTL       time.Duration
	LogLevel         string
	LogFormat        string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AIProvider:       strings.ToLower(strings.TrimSpace(os.Getenv("AI_PROVIDER"))),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		ClaudeAPIKey:     os.Getenv("CLAUDE_API_KEY"),
		ExchangeRateURL:  os.Getenv("EXCHANGE_RATE_URL"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogFormat:        strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
	}

	if cfg.AIProvider == "" {
		cfg.AIProvider = ProviderGemini
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatConsole
	}

	cfg.PendingTTL = 10 * time.Minute
	if ttlStr := os.Getenv("PENDING_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil && minutes >= 1 && minutes <= 60 {
			cfg.PendingTTL = time.Duration(minutes) * time.Minute
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	switch c.AIProvider {
	case ProviderGemini, ProviderOpenAI, ProviderClaude:
	default:
		errs = append(errs, fmt.Sprintf("AI_PROVIDER %q is not supported (gemini, openai, claude)", c.AIProvider))
	}

	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT %q is not supported (console, json)", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
