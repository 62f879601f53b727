// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Fraud rules
	RulesPath string // JSON rule set (optional, defaults used if not set)

	// Ledger
	LedgerCapacity int

	// Explanation backend (optional — fallback templates used if absent)
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	LLMTimeout    time.Duration

	// Security
	RateLimitRPM int

	// Tracing
	OTLPEndpoint string
}

// Defaults
const (
	DefaultPort           = "3000"
	DefaultEnv            = "development"
	DefaultLogLevel       = "info"
	DefaultLedgerCapacity = 1000
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultOpenAIBaseURL  = "https://api.openai.com/v1"
	DefaultLLMTimeoutMS   = 5000
	DefaultRateLimit      = 120
)

// Load reads configuration from environment variables.
// It loads a .env file if present (for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", DefaultPort),
		Env:            getEnv("ENV", DefaultEnv),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		RulesPath:      os.Getenv("RULES_PATH"), // Optional, built-in defaults if not set
		LedgerCapacity: getEnvInt("LEDGER_CAPACITY", DefaultLedgerCapacity),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"), // Optional, fallback explanations if not set
		OpenAIModel:    getEnv("OPENAI_MODEL", DefaultOpenAIModel),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_MS", DefaultLLMTimeoutMS)) * time.Millisecond,
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", DefaultRateLimit),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent
func (c *Config) Validate() error {
	if c.LedgerCapacity <= 0 {
		return fmt.Errorf("LEDGER_CAPACITY must be positive, got %d", c.LedgerCapacity)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT_MS must be positive")
	}
	if c.RateLimitRPM <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPM must be positive, got %d", c.RateLimitRPM)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
