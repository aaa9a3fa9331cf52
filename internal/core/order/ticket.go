package order

import "github.com/shopspring/decimal"

// Ticket is one order as entered by the user, before validation. String
// fields hold raw input; Validate normalizes them into an Order.
type Ticket struct {
	Symbol      string `validate:"required"`
	Side        string `validate:"required"`
	Type        string `validate:"required"`
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	TimeInForce string
	StopPrice   decimal.Decimal
	ReduceOnly  bool
}

// Order is a validated, normalized ticket. Only the fields relevant to Type
// carry meaning; the constructors below never set the others.
type Order struct {
	Symbol      string
	Side        Side
	Type        Type
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	TimeInForce TimeInForce
	StopPrice   decimal.Decimal
	ReduceOnly  bool
}

// Market builds a market order carrying only symbol, side and quantity.
func Market(symbol string, side Side, qty decimal.Decimal) Order {
	return Order{Symbol: symbol, Side: side, Type: TypeMarket, Quantity: qty}
}

// Limit builds a limit order; price and timeInForce are mandatory for this
// variant so they are plain parameters, not options.
func Limit(symbol string, side Side, qty, price decimal.Decimal, tif TimeInForce) Order {
	return Order{
		Symbol:      symbol,
		Side:        side,
		Type:        TypeLimit,
		Quantity:    qty,
		Price:       price,
		TimeInForce: tif,
	}
}

// StopMarket builds a stop-market order triggered at stopPrice.
func StopMarket(symbol string, side Side, qty, stopPrice decimal.Decimal) Order {
	return Order{
		Symbol:    symbol,
		Side:      side,
		Type:      TypeStopMarket,
		Quantity:  qty,
		StopPrice: stopPrice,
	}
}
