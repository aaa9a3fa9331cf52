package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// TestnetBaseURL is the USDT-M futures testnet REST endpoint.
	TestnetBaseURL = "https://testnet.binancefuture.com"
	// ProductionBaseURL is the live USDT-M futures REST endpoint.
	ProductionBaseURL = "https://fapi.binance.com"
	// TestnetStreamURL is the futures testnet market-data websocket endpoint.
	TestnetStreamURL = "wss://stream.binancefuture.com/ws"
	// ProductionStreamURL is the live futures market-data websocket endpoint.
	ProductionStreamURL = "wss://fstream.binance.com/ws"
)

type Config struct {
	// Binance API
	APIKey       string
	APISecret    string
	BaseURL      string
	StreamURL    string
	RecvWindowMS int

	// Telemetry
	LogDir   string
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIKey:       envStr("BINANCE_API_KEY", ""),
		APISecret:    envStr("BINANCE_API_SECRET", ""),
		BaseURL:      envStr("BINANCE_BASE_URL", ""),
		StreamURL:    envStr("BINANCE_WS_URL", ""),
		RecvWindowMS: envInt("RECV_WINDOW_MS", 5000),

		LogDir:   envStr("BOT_LOG_DIR", "logs"),
		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

// ResolveBaseURL picks the REST endpoint: an explicit BINANCE_BASE_URL wins,
// otherwise the testnet flag selects between sandbox and production.
func (c *Config) ResolveBaseURL(testnet bool) string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if testnet {
		return TestnetBaseURL
	}
	return ProductionBaseURL
}

// ResolveStreamURL picks the websocket endpoint the same way.
func (c *Config) ResolveStreamURL(testnet bool) string {
	if c.StreamURL != "" {
		return c.StreamURL
	}
	if testnet {
		return TestnetStreamURL
	}
	return ProductionStreamURL
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
