package bot

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"github.com/quantfold/futures-bot/internal/adapters/outbound/binance_http"
	"github.com/quantfold/futures-bot/internal/core/order"
)

// Kind classifies a failed operation. Exactly one fallback variant exists for
// anything that is neither a pre-network rejection nor a typed API error.
type Kind uint8

const (
	KindValidation Kind = iota // rejected before any network call
	KindClient                 // exchange rejected the request (4xx)
	KindServer                 // upstream transient failure (5xx)
	KindOther                  // transport failure, decode failure, anything else
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindOther:
		return "other"
	}
	return "unknown"
}

// Error wraps a failure with its kind, preserving the cause for inspection
// via errors.As / errors.Unwrap.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Cause supports github.com/pkg/errors traversal.
func (e *Error) Cause() error { return e.cause }

// classify maps an underlying failure onto the kind taxonomy.
func classify(err error) *Error {
	var vErr *order.ValidationError
	if pkgerrors.As(err, &vErr) {
		return &Error{Kind: KindValidation, cause: err}
	}
	if apiErr, ok := binance_http.AsAPIError(err); ok {
		if apiErr.IsServerError() {
			return &Error{Kind: KindServer, cause: err}
		}
		return &Error{Kind: KindClient, cause: err}
	}
	return &Error{Kind: KindOther, cause: err}
}
