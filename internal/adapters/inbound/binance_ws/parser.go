package binance_ws

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tick is one normalized trade or mark-price update.
type Tick struct {
	Symbol   string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Time     time.Time
}

// rawEvent covers the fields shared by aggTrade and markPrice payloads.
type rawEvent struct {
	EventType string `json:"e"`
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	TradeTime int64  `json:"T"`
}

// ParseTick decodes a stream message. Messages that are not price-bearing
// events (subscription acks, unknown types) return ok=false.
func ParseTick(msg []byte) (Tick, bool) {
	var raw rawEvent
	if err := json.Unmarshal(msg, &raw); err != nil {
		return Tick{}, false
	}
	if raw.Symbol == "" || raw.Price == "" {
		return Tick{}, false
	}

	price, err := decimal.NewFromString(raw.Price)
	if err != nil {
		return Tick{}, false
	}

	tick := Tick{Symbol: raw.Symbol, Price: price}
	if raw.Quantity != "" {
		if qty, err := decimal.NewFromString(raw.Quantity); err == nil {
			tick.Quantity = qty
		}
	}

	ts := raw.TradeTime
	if ts == 0 {
		ts = raw.EventTime
	}
	if ts > 0 {
		tick.Time = time.UnixMilli(ts)
	}
	return tick, true
}
