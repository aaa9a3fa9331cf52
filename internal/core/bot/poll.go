package bot

import (
	"context"
	"time"

	"github.com/quantfold/futures-bot/internal/adapters/outbound/binance_http"
)

// PollStatus issues exactly count sequential status calls for orderID,
// sleeping interval between iterations. Bounded, unconditional iteration: no
// terminal-state detection, no event-driven waiting. The observe callback
// sees every successful poll; the first failure stops the loop and is
// returned.
func (b *Bot) PollStatus(ctx context.Context, symbol string, orderID int64, count int, interval time.Duration, observe func(*binance_http.Order)) error {
	for i := 0; i < count; i++ {
		if i > 0 && interval > 0 {
			time.Sleep(interval)
		}

		resp, err := b.GetOrderStatus(ctx, symbol, orderID, "")
		if err != nil {
			return err
		}
		if observe != nil {
			observe(resp)
		}
	}
	return nil
}
