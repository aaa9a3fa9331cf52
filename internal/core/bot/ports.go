package bot

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/quantfold/futures-bot/internal/adapters/outbound/binance_http"
)

var _ ExchangeClient = (*binance_http.Client)(nil)

// ExchangeClient abstracts the signed REST transport. Satisfied by
// *binance_http.Client; tests substitute a counting fake.
type ExchangeClient interface {
	PlaceOrder(ctx context.Context, params url.Values) (*binance_http.Order, error)
	GetOrder(ctx context.Context, params url.Values) (*binance_http.Order, error)
	CancelOrder(ctx context.Context, params url.Values) (*binance_http.Order, error)
	TickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	GetExchangeInfo(ctx context.Context) (*binance_http.ExchangeInfo, error)
}
