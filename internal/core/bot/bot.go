package bot

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/quantfold/futures-bot/internal/adapters/outbound/binance_http"
	"github.com/quantfold/futures-bot/internal/core/order"
	"github.com/quantfold/futures-bot/internal/telemetry"
)

// Bot orchestrates one validated order into one transport call. It is a
// logging+validation layer over the exchange client, not a resilience layer:
// transport failures are logged once and returned, never retried.
type Bot struct {
	log    *slog.Logger
	client ExchangeClient
}

func New(log *slog.Logger, client ExchangeClient) *Bot {
	return &Bot{log: log, client: client}
}

// PlaceOrder validates the ticket, builds a parameter bag holding only the
// fields relevant to the order type, and submits it. Validation failure means
// zero transport calls.
func (b *Bot) PlaceOrder(ctx context.Context, t order.Ticket) (*binance_http.Order, error) {
	o, err := order.Validate(t)
	if err != nil {
		telemetry.Metrics.ValidationFails.Inc()
		b.log.Warn("order rejected before submission", "reason", err.Error())
		return nil, classify(err)
	}

	params := orderParams(o)
	b.log.Info("placing order", "params", params.Encode())

	resp, err := b.client.PlaceOrder(ctx, params)
	if err != nil {
		b.logFailure("place order", err)
		return nil, classify(err)
	}

	b.log.Info("order accepted",
		"orderId", resp.OrderID,
		"clientOrderId", resp.ClientOrderID,
		"status", resp.Status,
		"executedQty", resp.ExecutedQty,
		"avgPrice", resp.AvgPrice,
	)
	return resp, nil
}

// GetPrice fetches the latest traded price for symbol.
func (b *Bot) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, err := b.client.TickerPrice(ctx, symbol)
	if err != nil {
		b.logFailure("get price", err)
		return decimal.Zero, classify(err)
	}
	b.log.Info("ticker price", "symbol", symbol, "price", price.String())
	return price, nil
}

// GetOrderStatus fetches the current state of a previously placed order. At
// least one of orderID / clientOrderID must be supplied; the exchange
// enforces the exact pairing rules.
func (b *Bot) GetOrderStatus(ctx context.Context, symbol string, orderID int64, clientOrderID string) (*binance_http.Order, error) {
	params, err := lookupParams(symbol, orderID, clientOrderID)
	if err != nil {
		return nil, classify(err)
	}

	telemetry.Metrics.StatusPolls.Inc()
	resp, err := b.client.GetOrder(ctx, params)
	if err != nil {
		b.logFailure("order status", err)
		return nil, classify(err)
	}

	b.log.Info("order status",
		"orderId", resp.OrderID,
		"status", resp.Status,
		"executedQty", resp.ExecutedQty,
		"avgPrice", resp.AvgPrice,
	)
	return resp, nil
}

// CancelOrder requests cancellation and returns the exchange's
// acknowledgement.
func (b *Bot) CancelOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (*binance_http.Order, error) {
	params, err := lookupParams(symbol, orderID, clientOrderID)
	if err != nil {
		return nil, classify(err)
	}

	resp, err := b.client.CancelOrder(ctx, params)
	if err != nil {
		b.logFailure("cancel order", err)
		return nil, classify(err)
	}

	b.log.Info("order canceled", "orderId", resp.OrderID, "status", resp.Status)
	return resp, nil
}

// GetExchangeInfo fetches static exchange metadata. Passthrough.
func (b *Bot) GetExchangeInfo(ctx context.Context) (*binance_http.ExchangeInfo, error) {
	info, err := b.client.GetExchangeInfo(ctx)
	if err != nil {
		b.logFailure("exchange info", err)
		return nil, classify(err)
	}
	b.log.Info("exchange info", "symbols", len(info.Symbols))
	return info, nil
}

// logFailure emits the single error-level entry for a failed transport call,
// with whatever diagnostics the error carries.
func (b *Bot) logFailure(op string, err error) {
	if apiErr, ok := binance_http.AsAPIError(err); ok {
		b.log.Error(op+" failed",
			"status", apiErr.HTTPStatus,
			"code", apiErr.Code,
			"msg", apiErr.Msg,
		)
		return
	}
	b.log.Error(op+" failed", "err", err.Error())
}

// orderParams builds the bag the exchange sees. Fields irrelevant to the
// order type are never set.
func orderParams(o order.Order) url.Values {
	params := url.Values{}
	params.Set("symbol", o.Symbol)
	params.Set("side", o.Side.String())
	params.Set("type", o.Type.String())
	params.Set("quantity", o.Quantity.String())
	params.Set("newClientOrderId", newClientOrderID())

	switch o.Type {
	case order.TypeLimit:
		params.Set("price", o.Price.String())
		params.Set("timeInForce", o.TimeInForce.String())
	case order.TypeStopMarket:
		params.Set("stopPrice", o.StopPrice.String())
	}

	if o.ReduceOnly {
		params.Set("reduceOnly", "true")
	}
	return params
}

func lookupParams(symbol string, orderID int64, clientOrderID string) (url.Values, error) {
	if orderID == 0 && clientOrderID == "" {
		return nil, pkgerrors.WithStack(&order.ValidationError{
			Field:  "orderId",
			Reason: "or clientOrderId is required",
		})
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	if orderID != 0 {
		params.Set("orderId", strconv.FormatInt(orderID, 10))
	}
	if clientOrderID != "" {
		params.Set("origClientOrderId", clientOrderID)
	}
	return params, nil
}

// newClientOrderID fits Binance's 36-char client order id limit.
func newClientOrderID() string {
	return uuid.NewString()
}
