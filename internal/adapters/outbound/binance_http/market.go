package binance_http

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// tickerResponse is GET /fapi/v1/ticker/price for a single symbol.
type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Time   int64  `json:"time"`
}

// TickerPrice returns the latest traded price for symbol. Fails when the
// response lacks a price field or the value is not numeric.
func (c *Client) TickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	body, err := c.get(ctx, "/fapi/v1/ticker/price", params, false)
	if err != nil {
		return decimal.Zero, err
	}

	var tick tickerResponse
	if err := json.Unmarshal(body, &tick); err != nil {
		return decimal.Zero, fmt.Errorf("unmarshal ticker: %w", err)
	}
	if tick.Price == "" {
		return decimal.Zero, fmt.Errorf("ticker for %s has no price field", symbol)
	}

	price, err := decimal.NewFromString(tick.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ticker price %q for %s is not numeric: %w", tick.Price, symbol, err)
	}
	return price, nil
}

// SymbolInfo is the subset of per-symbol exchange metadata the CLI prints.
type SymbolInfo struct {
	Symbol            string `json:"symbol"`
	Status            string `json:"status"`
	BaseAsset         string `json:"baseAsset"`
	QuoteAsset        string `json:"quoteAsset"`
	PricePrecision    int    `json:"pricePrecision"`
	QuantityPrecision int    `json:"quantityPrecision"`
}

type ExchangeInfo struct {
	Timezone   string       `json:"timezone"`
	ServerTime int64        `json:"serverTime"`
	Symbols    []SymbolInfo `json:"symbols"`
}

// GetExchangeInfo fetches static exchange metadata. Passthrough, no
// transformation beyond decoding.
func (c *Client) GetExchangeInfo(ctx context.Context) (*ExchangeInfo, error) {
	body, err := c.get(ctx, "/fapi/v1/exchangeInfo", nil, false)
	if err != nil {
		return nil, err
	}

	var info ExchangeInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("unmarshal exchange info: %w", err)
	}
	return &info, nil
}
