package bootstrap

import (
	"context"
	"testing"
	"time"

	"tv-keuzehulp-be/internal/config"
	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/internal/repository/memory"
	"tv-keuzehulp-be/pkg/catalog"
	"tv-keuzehulp-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct{}

func (stubLLM) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return "ok", nil
}

func (stubLLM) Generate(context.Context, string, ...llm.Option) (string, error) {
	return "ok", nil
}

func testConfig(store string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Environment: "test",
			RedisURL:    "redis://127.0.0.1:1",
		},
		Session: config.SessionConfig{
			Secret: "secret",
			Store:  store,
			TTL:    time.Minute,
		},
		Ai: config.AIConfig{LLMModel: "stub", MaxTokens: 100, HistoryLimit: 10},
	}
}

func newTestContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	c, err := NewContainer(cfg, Overrides{
		Logger:      logger.NewNopLogger(),
		LLMProvider: stubLLM{},
		Catalog:     catalog.New([]catalog.Product{{Name: "LG OLED55C3", Brand: "LG", Price: 1299}}),
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewContainerWiresServices(t *testing.T) {
	c := newTestContainer(t, testConfig("memory"))

	assert.NotNil(t, c.KeuzehulpService)
	assert.NotNil(t, c.AuthService)
	assert.NotNil(t, c.EventService)
	assert.NotNil(t, c.KeuzehulpController)
	assert.NotNil(t, c.AuthController)
	assert.Equal(t, 1, c.Catalog.Len())
	assert.Equal(t, 1, c.KeuzehulpService.ProductCount())
	assert.False(t, c.AuthService.Enabled())
	assert.IsType(t, &memory.SessionRepository{}, c.SessionRepo)
}

func TestSessionStoreFallsBackToMemory(t *testing.T) {
	for _, store := range []string{"redis", "postgres"} {
		t.Run(store, func(t *testing.T) {
			c := newTestContainer(t, testConfig(store))
			assert.IsType(t, &memory.SessionRepository{}, c.SessionRepo)
		})
	}
}

func TestLoginEnabledWithPassword(t *testing.T) {
	cfg := testConfig("memory")
	cfg.Keuzehulp.Password = "geheim"

	c := newTestContainer(t, cfg)
	assert.True(t, c.AuthService.Enabled())
}

func TestMissingLLMKeyFails(t *testing.T) {
	cfg := testConfig("memory")
	cfg.Ai.LLMProvider = "openai"

	_, err := NewContainer(cfg, Overrides{Logger: logger.NewNopLogger(), Catalog: catalog.New(nil)})
	assert.Error(t, err)
}
