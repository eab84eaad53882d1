package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearOracleEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ORACLE_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"ORACLE_TIMEOUT_SECONDS", "CANDIDATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearOracleEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.OracleProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 3, cfg.CandidateLimit)
	assert.Equal(t, 15*time.Second, cfg.OracleTimeout())
}

func TestLoadUnknownProvider(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("ORACLE_PROVIDER", "clippy")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ORACLE_PROVIDER")
}

func TestLoadProviderRequiresKey(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		clearOracleEnv(t)
		t.Setenv("ORACLE_PROVIDER", "openai")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("gemini", func(t *testing.T) {
		clearOracleEnv(t)
		t.Setenv("ORACLE_PROVIDER", "gemini")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})
}

func TestLoadProviderWithKey(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("ORACLE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ORACLE_TIMEOUT_SECONDS", "5")
	t.Setenv("CANDIDATE_LIMIT", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.OracleProvider)
	assert.Equal(t, 5*time.Second, cfg.OracleTimeout())
	assert.Equal(t, 7, cfg.CandidateLimit)
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	clearOracleEnv(t)
	t.Setenv("ORACLE_TIMEOUT_SECONDS", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORACLE_TIMEOUT_SECONDS")
}
