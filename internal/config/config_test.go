package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "PORT", "KEUZEHULP_PASSWORD", "LLM_PROVIDER", "LLM_HISTORY_LIMIT", "EXPOSE_PRODUCTS", "SESSION_TTL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "openai", cfg.Ai.LLMProvider)
	assert.Equal(t, 10, cfg.Ai.HistoryLimit)
	assert.True(t, cfg.Keuzehulp.ExposeProducts)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.LoginEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("KEUZEHULP_PASSWORD", "geheim")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("LLM_TEMPERATURE", "0.3")
	t.Setenv("LLM_HISTORY_LIMIT", "4")
	t.Setenv("EXPOSE_PRODUCTS", "false")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("GO_ENV", "production")
	t.Setenv("DB_CONNECTION_STRING", "postgres://keuzehulp@db/keuzehulp")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.1")

	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.LoginEnabled())
	assert.Equal(t, "anthropic", cfg.Ai.LLMProvider)
	assert.Equal(t, 0.3, cfg.Ai.Temperature)
	assert.Equal(t, 4, cfg.Ai.HistoryLimit)
	assert.False(t, cfg.Keuzehulp.ExposeProducts)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://keuzehulp@db/keuzehulp", cfg.App.DatabaseURL)
	assert.Equal(t, 0.1, cfg.Otel.SampleRatio)
	assert.Equal(t, "production", cfg.Otel.Environment)
}

func TestEnvHelpersFallback(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_BOOL", "misschien")
	t.Setenv("SOME_FLOAT", "")

	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	assert.True(t, getEnvAsBool("SOME_BOOL", true))
	assert.Equal(t, 1.5, getEnvAsFloat("SOME_FLOAT", 1.5))
}
