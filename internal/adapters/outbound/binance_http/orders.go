package binance_http

import (
	"context"
	"fmt"
	"net/url"

	"github.com/quantfold/futures-bot/internal/telemetry"
)

const orderPath = "/fapi/v1/order"

// Order is the exchange's order payload, returned by placement, status and
// cancel calls alike. Decimal-valued fields stay strings: they are echoed to
// the user, never computed on.
type Order struct {
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Symbol        string `json:"symbol"`
	Status        string `json:"status"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	Price         string `json:"price"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	AvgPrice      string `json:"avgPrice"`
	StopPrice     string `json:"stopPrice"`
	TimeInForce   string `json:"timeInForce"`
	ReduceOnly    bool   `json:"reduceOnly"`
	UpdateTime    int64  `json:"updateTime"`
}

// PlaceOrder submits the prepared parameter bag to POST /fapi/v1/order.
func (c *Client) PlaceOrder(ctx context.Context, params url.Values) (*Order, error) {
	body, err := c.post(ctx, orderPath, params)
	if err != nil {
		telemetry.Metrics.OrderErrors.Inc()
		return nil, err
	}

	var o Order
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order response: %w", err)
	}

	telemetry.Metrics.OrdersSent.Inc()
	telemetry.Infof("binance: order placed symbol=%s side=%s type=%s -> id=%d status=%s",
		o.Symbol, o.Side, o.Type, o.OrderID, o.Status)

	return &o, nil
}

// GetOrder queries GET /fapi/v1/order. The bag must carry symbol plus
// orderId or origClientOrderId; the exchange enforces that pairing.
func (c *Client) GetOrder(ctx context.Context, params url.Values) (*Order, error) {
	body, err := c.get(ctx, orderPath, params, true)
	if err != nil {
		return nil, err
	}

	var o Order
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order status: %w", err)
	}
	return &o, nil
}

// CancelOrder issues DELETE /fapi/v1/order and returns the exchange's
// cancellation acknowledgement.
func (c *Client) CancelOrder(ctx context.Context, params url.Values) (*Order, error) {
	body, err := c.delete(ctx, orderPath, params)
	if err != nil {
		return nil, err
	}

	var o Order
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("unmarshal cancel response: %w", err)
	}

	telemetry.Infof("binance: order canceled symbol=%s id=%d status=%s", o.Symbol, o.OrderID, o.Status)
	return &o, nil
}
