package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/quantfold/futures-bot/internal/adapters/binance_auth"
	"github.com/quantfold/futures-bot/internal/adapters/outbound/binance_http"
	"github.com/quantfold/futures-bot/internal/config"
	"github.com/quantfold/futures-bot/internal/core/bot"
	"github.com/quantfold/futures-bot/internal/core/order"
	"github.com/quantfold/futures-bot/internal/telemetry"
)

func main() {
	apiKey := flag.String("apiKey", "", "Binance API key (or BINANCE_API_KEY)")
	apiSecret := flag.String("apiSecret", "", "Binance API secret (or BINANCE_API_SECRET)")
	symbol := flag.String("symbol", "", "trading pair, e.g. BTCUSDT")
	side := flag.String("side", "", "BUY or SELL")
	otype := flag.String("type", "", "MARKET, LIMIT or STOP_MARKET")
	quantity := flag.Float64("quantity", 0, "order quantity in base asset")
	price := flag.Float64("price", 0, "limit price (LIMIT only)")
	timeInForce := flag.String("timeInForce", "GTC", "GTC, IOC or FOK (LIMIT only)")
	stopPrice := flag.Float64("stopPrice", 0, "trigger price (STOP_MARKET only)")
	reduceOnly := flag.Bool("reduceOnly", false, "only reduce an existing position")
	checkStatus := flag.Bool("checkStatus", false, "poll order status after placement")
	pollSeconds := flag.Int("pollSeconds", 2, "seconds between status polls")
	pollCount := flag.Int("pollCount", 5, "number of status polls")
	testnet := flag.Bool("testnet", true, "use the futures testnet (pass -testnet=false for live)")
	flag.Parse()

	if *symbol == "" || *side == "" || *otype == "" {
		fmt.Fprintln(os.Stderr, "usage: futuresbot -symbol BTCUSDT -side BUY -type MARKET -quantity 0.001 [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Load()
	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}
	if *apiSecret != "" {
		cfg.APISecret = *apiSecret
	}

	if err := telemetry.Setup(telemetry.ParseLogLevel(cfg.LogLevel), cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "logger setup: %v\n", err)
		os.Exit(1)
	}

	signer := binance_auth.New(cfg.APIKey, cfg.APISecret, cfg.RecvWindowMS)
	if !signer.Enabled() {
		telemetry.Errorf("Binance credentials missing — pass -apiKey/-apiSecret or set BINANCE_API_KEY / BINANCE_API_SECRET")
		os.Exit(1)
	}

	baseURL := cfg.ResolveBaseURL(*testnet)
	telemetry.Infof("Binance connected  testnet=%v  api=%s", *testnet, baseURL)

	client := binance_http.NewClient(baseURL, signer)
	b := bot.New(telemetry.L(), client)

	ticket := order.Ticket{
		Symbol:      *symbol,
		Side:        *side,
		Type:        *otype,
		Quantity:    decimal.NewFromFloat(*quantity),
		Price:       decimal.NewFromFloat(*price),
		TimeInForce: *timeInForce,
		StopPrice:   decimal.NewFromFloat(*stopPrice),
		ReduceOnly:  *reduceOnly,
	}

	ctx := context.Background()
	resp, err := b.PlaceOrder(ctx, ticket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "order failed: %v\n", err)
		os.Exit(1)
	}

	printSummary(os.Stdout, resp)

	if *checkStatus && resp.OrderID != 0 {
		interval := time.Duration(*pollSeconds) * time.Second
		err := b.PollStatus(ctx, *symbol, resp.OrderID, *pollCount, interval, func(o *binance_http.Order) {
			fmt.Printf("poll: status=%-16s executedQty=%-12s avgPrice=%s\n", o.Status, o.ExecutedQty, o.AvgPrice)
		})
		if err != nil {
			// Placement already succeeded; polling failure does not change
			// the exit code.
			fmt.Fprintf(os.Stderr, "status poll failed: %v\n", err)
		}
	}

	telemetry.Infof("Done  orders=%d errors=%d polls=%d api_p50=%s api_p99=%s",
		telemetry.Metrics.OrdersSent.Value(),
		telemetry.Metrics.OrderErrors.Value(),
		telemetry.Metrics.StatusPolls.Value(),
		telemetry.Metrics.APILatency.P50(),
		telemetry.Metrics.APILatency.P99(),
	)
}

func printSummary(w io.Writer, o *binance_http.Order) {
	fmt.Fprintln(w, "order placed:")
	fmt.Fprintf(w, "  %-14s %s\n", "orderId", strconv.FormatInt(o.OrderID, 10))
	fmt.Fprintf(w, "  %-14s %s\n", "clientOrderId", o.ClientOrderID)
	fmt.Fprintf(w, "  %-14s %s\n", "symbol", o.Symbol)
	fmt.Fprintf(w, "  %-14s %s\n", "side", o.Side)
	fmt.Fprintf(w, "  %-14s %s\n", "type", o.Type)
	fmt.Fprintf(w, "  %-14s %s\n", "status", o.Status)
	fmt.Fprintf(w, "  %-14s %s\n", "executedQty", o.ExecutedQty)
	fmt.Fprintf(w, "  %-14s %s\n", "avgPrice", prettyPrice(o.AvgPrice))
	if o.UpdateTime > 0 {
		fmt.Fprintf(w, "  %-14s %s\n", "updateTime", time.UnixMilli(o.UpdateTime).UTC().Format(time.RFC3339))
	}
}

// prettyPrice adds thousands separators for readability; the raw exchange
// string is kept when it does not parse.
func prettyPrice(raw string) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f == 0 {
		return raw
	}
	return humanize.Commaf(f)
}
