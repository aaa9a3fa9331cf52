package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/quantfold/futures-bot/internal/adapters/inbound/binance_ws"
	"github.com/quantfold/futures-bot/internal/config"
	"github.com/quantfold/futures-bot/internal/telemetry"
)

func main() {
	symbol := flag.String("symbol", "", "trading pair to watch, e.g. BTCUSDT")
	channel := flag.String("channel", "aggTrade", "stream channel (aggTrade, markPrice)")
	testnet := flag.Bool("testnet", true, "use the futures testnet stream")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "usage: pricewatch -symbol BTCUSDT [-channel aggTrade] [-testnet=false]")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := telemetry.Setup(telemetry.ParseLogLevel(cfg.LogLevel), cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "logger setup: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws := binance_ws.NewClient(cfg.ResolveStreamURL(*testnet), *symbol, *channel, func(t binance_ws.Tick) {
		price, _ := t.Price.Float64()
		fmt.Printf("%s  %s  %s\n", t.Time.Format("15:04:05.000"), t.Symbol, humanize.Commaf(price))
	})
	if err := ws.Connect(ctx); err != nil {
		telemetry.Errorf("stream connect: %v", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-ws.Done():
	}
	cancel()

	telemetry.Infof("Done  ticks=%d reconnects=%d",
		telemetry.Metrics.StreamTicks.Value(),
		telemetry.Metrics.StreamReconnects.Value(),
	)
}
