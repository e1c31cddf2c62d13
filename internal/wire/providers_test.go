package wire

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-relay/internal/config"
	"idea-relay/internal/infrastructure/persistence/memory"
)

func TestProvideInflightRegistry(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Enabled: false}}
	reg, err := ProvideInflightRegistry(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, reg)

	cfg.Session = config.SessionConfig{Enabled: true, Backend: "memory", TTL: time.Minute}
	reg, err = ProvideInflightRegistry(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &memory.InflightRegistry{}, reg)

	cfg.Session.Backend = "redis"
	_, err = ProvideInflightRegistry(cfg, nil)
	assert.Error(t, err)

	cfg.Session.Backend = "etcd"
	_, err = ProvideInflightRegistry(cfg, nil)
	assert.Error(t, err)
}

func TestProvideReadinessPinger_NilClient(t *testing.T) {
	assert.Nil(t, ProvideReadinessPinger(nil))
}

func TestInitializeApp_MemoryBackend(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Name: "idea-relay", Env: "test"},
		Session: config.SessionConfig{Enabled: true, Backend: "memory", TTL: time.Minute},
		LLM: config.LLMConfig{
			DefaultProvider: "openai",
			Providers:       map[string]config.ProviderConfig{"openai": {Model: "gpt-4o-mini"}},
		},
	}

	app, cleanup, err := InitializeApp(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, app.Engine())
}
