package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBaseURL(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, TestnetBaseURL, cfg.ResolveBaseURL(true))
	assert.Equal(t, ProductionBaseURL, cfg.ResolveBaseURL(false))

	cfg.BaseURL = "https://example.test"
	assert.Equal(t, "https://example.test", cfg.ResolveBaseURL(true))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BOT_LOG_DIR", "")
	t.Setenv("RECV_WINDOW_MS", "")

	cfg := Load()
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5000, cfg.RecvWindowMS)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BOT_LOG_DIR", "/var/log/bot")
	t.Setenv("RECV_WINDOW_MS", "10000")

	cfg := Load()
	assert.Equal(t, "/var/log/bot", cfg.LogDir)
	assert.Equal(t, 10000, cfg.RecvWindowMS)
}
