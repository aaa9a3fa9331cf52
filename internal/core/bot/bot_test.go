package bot_test

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/futures-bot/internal/adapters/outbound/binance_http"
	"github.com/quantfold/futures-bot/internal/core/bot"
	"github.com/quantfold/futures-bot/internal/core/order"
	"github.com/quantfold/futures-bot/internal/telemetry"
)

// fakeClient counts invocations and captures the last parameter bag.
type fakeClient struct {
	placeCalls  int
	getCalls    int
	cancelCalls int
	lastParams  url.Values

	placeResp *binance_http.Order
	placeErr  error
	getResp   *binance_http.Order
	getErr    error
	price     decimal.Decimal
	priceErr  error
}

func (f *fakeClient) PlaceOrder(_ context.Context, params url.Values) (*binance_http.Order, error) {
	f.placeCalls++
	f.lastParams = params
	return f.placeResp, f.placeErr
}

func (f *fakeClient) GetOrder(_ context.Context, params url.Values) (*binance_http.Order, error) {
	f.getCalls++
	f.lastParams = params
	return f.getResp, f.getErr
}

func (f *fakeClient) CancelOrder(_ context.Context, params url.Values) (*binance_http.Order, error) {
	f.cancelCalls++
	f.lastParams = params
	return f.getResp, f.getErr
}

func (f *fakeClient) TickerPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	return f.price, f.priceErr
}

func (f *fakeClient) GetExchangeInfo(_ context.Context) (*binance_http.ExchangeInfo, error) {
	return &binance_http.ExchangeInfo{}, nil
}

// captureHandler records every emitted slog record.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) errorRecords() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []slog.Record
	for _, r := range h.records {
		if r.Level >= slog.LevelError {
			out = append(out, r)
		}
	}
	return out
}

func newTestBot(client *fakeClient) (*bot.Bot, *captureHandler) {
	h := &captureHandler{}
	return bot.New(slog.New(h), client), h
}

func marketTicket() order.Ticket {
	return order.Ticket{
		Symbol:   "BTCUSDT",
		Side:     "buy",
		Type:     "market",
		Quantity: decimal.RequireFromString("0.001"),
	}
}

func TestPlaceOrder_ValidationFailureSkipsTransport(t *testing.T) {
	client := &fakeClient{}
	b, _ := newTestBot(client)

	tk := marketTicket()
	tk.Quantity = decimal.Zero

	_, err := b.PlaceOrder(context.Background(), tk)
	var botErr *bot.Error
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, bot.KindValidation, botErr.Kind)

	var vErr *order.ValidationError
	assert.ErrorAs(t, err, &vErr, "cause must stay inspectable")
	assert.Equal(t, 0, client.placeCalls, "no network call on validation failure")
}

func TestPlaceOrder_MarketBagCarriesOnlyRelevantFields(t *testing.T) {
	client := &fakeClient{placeResp: &binance_http.Order{
		OrderID: 123, Symbol: "BTCUSDT", Status: "FILLED", ExecutedQty: "0.001",
	}}
	b, _ := newTestBot(client)

	resp, err := b.PlaceOrder(context.Background(), marketTicket())
	require.NoError(t, err)
	require.Equal(t, 1, client.placeCalls, "transport called exactly once")

	bag := client.lastParams
	assert.Equal(t, "BUY", bag.Get("side"))
	assert.Equal(t, "MARKET", bag.Get("type"))
	assert.Equal(t, "0.001", bag.Get("quantity"))
	assert.NotEmpty(t, bag.Get("newClientOrderId"))

	for _, key := range []string{"price", "timeInForce", "stopPrice", "reduceOnly"} {
		_, present := bag[key]
		assert.False(t, present, "market bag must not carry %s", key)
	}

	assert.Equal(t, int64(123), resp.OrderID)
	assert.Equal(t, "FILLED", resp.Status)
	assert.Equal(t, "0.001", resp.ExecutedQty)
}

func TestPlaceOrder_LimitBagCarriesPriceAndTIF(t *testing.T) {
	client := &fakeClient{placeResp: &binance_http.Order{OrderID: 7}}
	b, _ := newTestBot(client)

	tk := marketTicket()
	tk.Type = "limit"
	tk.Price = decimal.RequireFromString("45000.5")
	tk.TimeInForce = "ioc"

	_, err := b.PlaceOrder(context.Background(), tk)
	require.NoError(t, err)

	bag := client.lastParams
	assert.Equal(t, "LIMIT", bag.Get("type"))
	assert.Equal(t, "45000.5", bag.Get("price"))
	assert.Equal(t, "IOC", bag.Get("timeInForce"))
	_, present := bag["stopPrice"]
	assert.False(t, present)
}

func TestPlaceOrder_ClientErrorLoggedOnceAndReturned(t *testing.T) {
	apiErr := &binance_http.APIError{HTTPStatus: 400, Code: -1121, Msg: "Invalid symbol."}
	client := &fakeClient{placeErr: apiErr}
	b, logs := newTestBot(client)

	_, err := b.PlaceOrder(context.Background(), marketTicket())
	var botErr *bot.Error
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, bot.KindClient, botErr.Kind)

	got, ok := binance_http.AsAPIError(err)
	require.True(t, ok, "original API error must survive wrapping")
	assert.Equal(t, 400, got.HTTPStatus)

	errs := logs.errorRecords()
	require.Len(t, errs, 1, "exactly one error-level entry")
	found := false
	errs[0].Attrs(func(a slog.Attr) bool {
		if a.Key == "status" {
			found = true
			assert.Equal(t, int64(400), a.Value.Int64())
		}
		return true
	})
	assert.True(t, found, "error entry must carry the status code")
}

func TestPlaceOrder_FailureDiagnosticsReachLogFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, telemetry.Setup(slog.LevelInfo, dir))

	client := &fakeClient{placeErr: &binance_http.APIError{HTTPStatus: 400, Code: -1121, Msg: "Invalid symbol."}}
	b := bot.New(telemetry.L(), client)

	_, err := b.PlaceOrder(context.Background(), marketTicket())
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "bot.log"))
	require.NoError(t, err)
	logged := string(data)

	assert.Contains(t, logged, "| ERROR | futuresbot | place order failed")
	assert.Contains(t, logged, "status=400")
	assert.Contains(t, logged, "code=-1121")
	assert.Contains(t, logged, "Invalid symbol.")
}

func TestPlaceOrder_ServerErrorKind(t *testing.T) {
	client := &fakeClient{placeErr: &binance_http.APIError{HTTPStatus: 503, Msg: "Service unavailable"}}
	b, _ := newTestBot(client)

	_, err := b.PlaceOrder(context.Background(), marketTicket())
	var botErr *bot.Error
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, bot.KindServer, botErr.Kind)
}

func TestGetOrderStatus_RequiresAnIdentifier(t *testing.T) {
	client := &fakeClient{}
	b, _ := newTestBot(client)

	_, err := b.GetOrderStatus(context.Background(), "BTCUSDT", 0, "")
	var botErr *bot.Error
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, bot.KindValidation, botErr.Kind)
	assert.Equal(t, 0, client.getCalls)

	client.getResp = &binance_http.Order{OrderID: 9, Status: "NEW"}
	_, err = b.GetOrderStatus(context.Background(), "BTCUSDT", 9, "")
	require.NoError(t, err)
	assert.Equal(t, "9", client.lastParams.Get("orderId"))

	_, err = b.GetOrderStatus(context.Background(), "BTCUSDT", 0, "abc-1")
	require.NoError(t, err)
	assert.Equal(t, "abc-1", client.lastParams.Get("origClientOrderId"))
}

func TestPollStatus_IssuesExactlyCountCalls(t *testing.T) {
	client := &fakeClient{getResp: &binance_http.Order{OrderID: 42, Status: "PARTIALLY_FILLED"}}
	b, _ := newTestBot(client)

	seen := 0
	err := b.PollStatus(context.Background(), "BTCUSDT", 42, 3, 0, func(o *binance_http.Order) {
		seen++
		assert.Equal(t, "PARTIALLY_FILLED", o.Status)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, client.getCalls)
	assert.Equal(t, 3, seen)
}

func TestPollStatus_StopsOnFirstFailure(t *testing.T) {
	client := &fakeClient{getErr: &binance_http.APIError{HTTPStatus: 502}}
	b, _ := newTestBot(client)

	err := b.PollStatus(context.Background(), "BTCUSDT", 42, 3, 0, nil)
	var botErr *bot.Error
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, bot.KindServer, botErr.Kind)
	assert.Equal(t, 1, client.getCalls)
}

func TestGetPrice(t *testing.T) {
	client := &fakeClient{price: decimal.RequireFromString("45123.4")}
	b, _ := newTestBot(client)

	price, err := b.GetPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "45123.4", price.String())
}

func TestError_MessageNamesKind(t *testing.T) {
	client := &fakeClient{placeErr: &binance_http.APIError{HTTPStatus: 400, Code: -2019, Msg: "Margin is insufficient."}}
	b, _ := newTestBot(client)

	_, err := b.PlaceOrder(context.Background(), marketTicket())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "client error:"))
}
