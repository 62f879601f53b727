package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, DefaultLedgerCapacity, cfg.LedgerCapacity)
	assert.Equal(t, DefaultOpenAIModel, cfg.OpenAIModel)
	assert.Equal(t, DefaultOpenAIBaseURL, cfg.OpenAIBaseURL)
	assert.Equal(t, time.Duration(DefaultLLMTimeoutMS)*time.Millisecond, cfg.LLMTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ENV", "production")
	t.Setenv("LEDGER_CAPACITY", "50")
	t.Setenv("LLM_TIMEOUT_MS", "250")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 50, cfg.LedgerCapacity)
	assert.Equal(t, 250*time.Millisecond, cfg.LLMTimeout)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("LEDGER_CAPACITY", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultLedgerCapacity, cfg.LedgerCapacity)
}

func TestValidate_Rejects(t *testing.T) {
	t.Setenv("LEDGER_CAPACITY", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("LEDGER_CAPACITY", "10")
	t.Setenv("RATE_LIMIT_RPM", "-5")
	_, err = Load()
	assert.Error(t, err)
}
