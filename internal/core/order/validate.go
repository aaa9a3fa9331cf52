package order

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a malformed or incomplete ticket. It is produced
// before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order: %s %s", e.Field, e.Reason)
}

var (
	validate     *validator.Validate
	onceValidate sync.Once
)

func structValidator() *validator.Validate {
	onceValidate.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks a ticket and returns its normalized Order. Side, type and
// timeInForce are case-insensitive on input and uppercased on output. The
// conditional requirements follow the exchange's order-type rules: LIMIT
// needs price and timeInForce, STOP_MARKET needs stopPrice, MARKET ignores
// all three.
func Validate(t Ticket) (Order, error) {
	if err := structValidator().Struct(t); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return Order{}, &ValidationError{
				Field:  errs[0].Field(),
				Reason: "is required",
			}
		}
		return Order{}, &ValidationError{Field: "ticket", Reason: err.Error()}
	}

	side, err := SideFromString(t.Side)
	if err != nil {
		return Order{}, &ValidationError{Field: "side", Reason: fmt.Sprintf("must be BUY or SELL, got %q", t.Side)}
	}

	typ, err := TypeFromString(t.Type)
	if err != nil {
		return Order{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("must be MARKET, LIMIT or STOP_MARKET, got %q", t.Type)}
	}

	if !t.Quantity.IsPositive() {
		return Order{}, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	switch typ {
	case TypeMarket:
		o := Market(t.Symbol, side, t.Quantity)
		o.ReduceOnly = t.ReduceOnly
		return o, nil

	case TypeLimit:
		if !t.Price.IsPositive() {
			return Order{}, &ValidationError{Field: "price", Reason: "must be positive for LIMIT orders"}
		}
		if t.TimeInForce == "" {
			return Order{}, &ValidationError{Field: "timeInForce", Reason: "is required for LIMIT orders"}
		}
		tif, err := TimeInForceFromString(t.TimeInForce)
		if err != nil {
			return Order{}, &ValidationError{Field: "timeInForce", Reason: fmt.Sprintf("must be GTC, IOC or FOK, got %q", t.TimeInForce)}
		}
		o := Limit(t.Symbol, side, t.Quantity, t.Price, tif)
		o.ReduceOnly = t.ReduceOnly
		return o, nil

	case TypeStopMarket:
		if !t.StopPrice.IsPositive() {
			return Order{}, &ValidationError{Field: "stopPrice", Reason: "must be positive for STOP_MARKET orders"}
		}
		o := StopMarket(t.Symbol, side, t.Quantity, t.StopPrice)
		o.ReduceOnly = t.ReduceOnly
		return o, nil
	}

	return Order{}, &ValidationError{Field: "type", Reason: "unsupported"}
}
