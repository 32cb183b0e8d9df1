// Package position resolves what the account currently holds and what it
// paid for it.
package position

import (
	"context"
	"fmt"

	"trend-signal-bot/internal/interfaces"
	"trend-signal-bot/internal/types"
)

// Context answers balance and entry-price questions for one evaluation
// cycle. It is built from a single holdings snapshot taken before ticker
// fan-out, so concurrent per-ticker evaluation never observes a holdings
// store mutated mid-cycle.
type Context struct {
	holdings []types.Holding
	orders   interfaces.OrderStore
}

func NewContext(holdings []types.Holding, orders interfaces.OrderStore) *Context {
	return &Context{holdings: holdings, orders: orders}
}

// BalanceOf returns the held balance for the instrument, or 0 when the
// instrument is not held.
func (c *Context) BalanceOf(instrumentUID string) float64 {
	for _, h := range c.holdings {
		if h.InstrumentUID == instrumentUID {
			return h.Balance
		}
	}
	return 0
}

// AverageBuyPrice is the mean price of all standing buy orders for the
// instrument. With no standing orders the position is flat and the current
// price is the entry price by convention, which pins the percent-change
// calculation to exactly 0.
func (c *Context) AverageBuyPrice(ctx context.Context, instrumentUID string, currentPrice float64) (float64, error) {
	orders, err := c.orders.FindBuyOrders(ctx, instrumentUID)
	if err != nil {
		return 0, fmt.Errorf("find buy orders for %s: %w", instrumentUID, err)
	}
	if len(orders) == 0 {
		return currentPrice, nil
	}
	sum := 0.0
	for _, o := range orders {
		sum += o.Price
	}
	return sum / float64(len(orders)), nil
}
