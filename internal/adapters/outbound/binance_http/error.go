package binance_http

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the exchange, carrying the HTTP status
// and the exchange's own error code and message, e.g.
// {"code":-1121,"msg":"Invalid symbol."}.
type APIError struct {
	HTTPStatus int
	Code       int64  `json:"code"`
	Msg        string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance api error: status=%d code=%d msg=%q", e.HTTPStatus, e.Code, e.Msg)
}

// IsClientError reports a 4xx rejection (bad symbol, bad filter, auth).
func (e *APIError) IsClientError() bool {
	return e.HTTPStatus >= 400 && e.HTTPStatus < 500
}

// IsServerError reports a 5xx upstream failure.
func (e *APIError) IsServerError() bool {
	return e.HTTPStatus >= 500
}

// AsAPIError unwraps err looking for an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
