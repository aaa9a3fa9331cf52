package binance_http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/quantfold/futures-bot/internal/adapters/binance_auth"
	"github.com/quantfold/futures-bot/internal/telemetry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	baseURL      string
	httpClient   *http.Client
	signer       *binance_auth.Signer
	readLimiter  *rate.Limiter
	writeLimiter *rate.Limiter
}

func NewClient(baseURL string, signer *binance_auth.Signer) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		signer:       signer,
		readLimiter:  rate.NewLimiter(rate.Limit(20), 20),
		writeLimiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// do executes one request. Signed requests carry all parameters in the query
// string, Binance-style, with timestamp/recvWindow/signature appended by the
// signer. Non-2xx bodies decode into *APIError.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, signed bool) ([]byte, error) {
	lim := c.readLimiter
	if method != http.MethodGet {
		lim = c.writeLimiter
	}
	waitStart := time.Now()
	if err := lim.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	telemetry.Metrics.RateLimiterWait.Record(time.Since(waitStart))

	if params == nil {
		params = url.Values{}
	}

	var query string
	if signed {
		if !c.signer.Enabled() {
			return nil, fmt.Errorf("%s %s requires api credentials", method, path)
		}
		query = c.signer.SignedQuery(params)
	} else {
		query = params.Encode()
	}

	u := c.baseURL + path
	if query != "" {
		u += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.signer.Apply(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.Metrics.APICallErrors.Inc()
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	elapsed := time.Since(start)
	telemetry.Metrics.APILatency.Record(elapsed)
	telemetry.Infof("binance_http: %s %s -> %d (%s)", method, path, resp.StatusCode, elapsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		telemetry.Metrics.APICallErrors.Inc()
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr.Msg = string(body)
		}
		return nil, apiErr
	}

	return body, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, signed bool) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params, signed)
}

func (c *Client) post(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, params, true)
}

func (c *Client) delete(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, params, true)
}
