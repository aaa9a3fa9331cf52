package binance_ws

import (
	"context"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quantfold/futures-bot/internal/telemetry"
)

// Client streams one market-data channel for one symbol and invokes the
// tick callback for every decoded trade. Market streams are unauthenticated.
//
// Gorilla/websocket supports one concurrent reader, which is all this client
// uses: control frames are answered from the read goroutine's ping handler.
type Client struct {
	baseURL string
	stream  string
	onTick  func(Tick)
	done    chan struct{}
}

// NewClient builds a client for e.g. ("wss://stream.binancefuture.com/ws",
// "btcusdt@aggTrade"). The symbol part of the stream name must be lowercase;
// this is normalized here so callers can pass BTCUSDT.
func NewClient(baseURL, symbol, channel string, onTick func(Tick)) *Client {
	return &Client{
		baseURL: baseURL,
		stream:  strings.ToLower(symbol) + "@" + channel,
		onTick:  onTick,
		done:    make(chan struct{}),
	}
}

func (c *Client) Connect(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	go c.runLoop(ctx, conn)
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.baseURL+"/"+c.stream, nil)
	return conn, err
}

// runLoop reads messages and reconnects on failure with exponential backoff.
func (c *Client) runLoop(ctx context.Context, conn *websocket.Conn) {
	defer close(c.done)

	first := true
	for {
		if first {
			telemetry.Infof("binance_ws: connected stream=%s", c.stream)
			first = false
		} else {
			telemetry.Metrics.StreamReconnects.Inc()
			telemetry.Infof("binance_ws: reconnected stream=%s", c.stream)
		}

		c.readLoop(ctx, conn)

		select {
		case <-ctx.Done():
			return
		default:
		}

		backoff := 1 * time.Second
		const maxBackoff = 30 * time.Second
		for attempt := 1; ; attempt++ {
			telemetry.Warnf("binance_ws: reconnecting (attempt %d) in %s", attempt, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			next, err := c.dial(ctx)
			if err != nil {
				telemetry.Warnf("binance_ws: dial failed: %v", err)
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
				continue
			}
			conn = next
			break
		}
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	// Binance pings every 3 minutes and drops connections that do not pong
	// within 10 minutes.
	const pingWait = 10 * time.Minute

	conn.SetReadDeadline(time.Now().Add(pingWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pingWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			telemetry.Warnf("binance_ws: read error: %v", err)
			return
		}
		conn.SetReadDeadline(time.Now().Add(pingWait))

		tick, ok := ParseTick(msg)
		if !ok {
			telemetry.Debugf("binance_ws: ignoring non-price message (%d bytes)", len(msg))
			continue
		}
		telemetry.Metrics.StreamTicks.Inc()
		if c.onTick != nil {
			c.onTick(tick)
		}
	}
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}
