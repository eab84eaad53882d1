package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"expirycheck/internal/logger"
)

// Oracle provider names accepted in ORACLE_PROVIDER. An empty provider
// disables the oracle fallback tier entirely.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	// Oracle Configuration
	OracleProvider string
	OpenAIAPIKey   string
	OpenAIModel    string
	GeminiAPIKey   string
	GeminiModel    string

	// Pipeline Configuration
	OracleTimeoutSecs int
	CandidateLimit    int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OracleProvider:    getEnv("ORACLE_PROVIDER", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OracleTimeoutSecs: getIntEnv("ORACLE_TIMEOUT_SECONDS", 15),
		CandidateLimit:    getIntEnv("CANDIDATE_LIMIT", 3),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:         getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.OracleProvider {
	case "", ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown ORACLE_PROVIDER %q (expected %q, %q, or empty)",
			c.OracleProvider, ProviderOpenAI, ProviderGemini)
	}
	if c.OracleProvider == ProviderOpenAI && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when ORACLE_PROVIDER=%s", ProviderOpenAI)
	}
	if c.OracleProvider == ProviderGemini && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when ORACLE_PROVIDER=%s", ProviderGemini)
	}
	if c.OracleTimeoutSecs <= 0 {
		return fmt.Errorf("ORACLE_TIMEOUT_SECONDS must be positive, got %d", c.OracleTimeoutSecs)
	}
	if c.CandidateLimit <= 0 {
		return fmt.Errorf("CANDIDATE_LIMIT must be positive, got %d", c.CandidateLimit)
	}
	return nil
}

// OracleTimeout returns the per-request bound on the oracle call.
func (c *Config) OracleTimeout() time.Duration {
	return time.Duration(c.OracleTimeoutSecs) * time.Second
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
