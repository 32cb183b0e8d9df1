// Package kite adapts the Zerodha Kite Connect API to the narrow store
// interfaces the engine consumes. Everything here is a thin client; no
// decision logic lives on this side of the boundary.
package kite

import (
	"context"
	"fmt"
	"strconv"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"trend-signal-bot/internal/interfaces"
	"trend-signal-bot/internal/types"
)

type Params struct {
	APIKey      string
	AccessToken string
	Exchange    string
}

type Client struct {
	p      Params
	kc     *kiteconnect.Client
	mapper *instrumentMapper
}

var (
	_ interfaces.InstrumentDirectory = (*Client)(nil)
	_ interfaces.HoldingsStore       = (*Client)(nil)
	_ interfaces.OrderStore          = (*Client)(nil)
	_ interfaces.QuoteSource         = (*Client)(nil)
)

func New(p Params) *Client {
	kc := kiteconnect.New(p.APIKey)
	kc.SetAccessToken(p.AccessToken)
	return &Client{p: p, kc: kc, mapper: newInstrumentMapper()}
}

// Lookup resolves a ticker through the cached instrument dump, loading the
// dump from the API on first use.
func (c *Client) Lookup(ctx context.Context, ticker string) (types.Instrument, error) {
	if err := c.mapper.ensureLoaded(c.kc, c.p.Exchange); err != nil {
		return types.Instrument{}, fmt.Errorf("load instrument dump: %w", err)
	}
	inst, ok := c.mapper.byTicker(ticker)
	if !ok {
		return types.Instrument{}, fmt.Errorf("lookup %q: %w", ticker, interfaces.ErrInstrumentNotFound)
	}
	return inst, nil
}

// Snapshot returns current holdings keyed by instrument UID.
func (c *Client) Snapshot(ctx context.Context) ([]types.Holding, error) {
	holdings, err := c.kc.GetHoldings()
	if err != nil {
		return nil, fmt.Errorf("get holdings: %w", err)
	}
	out := make([]types.Holding, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, types.Holding{
			InstrumentUID: strconv.FormatUint(uint64(h.InstrumentToken), 10),
			Balance:       float64(h.Quantity),
		})
	}
	return out, nil
}

// FindBuyOrders lists standing (open) BUY orders for one instrument.
func (c *Client) FindBuyOrders(ctx context.Context, instrumentUID string) ([]types.BuyOrder, error) {
	orders, err := c.kc.GetOrders()
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	var out []types.BuyOrder
	for _, o := range orders {
		if o.Status != "OPEN" || o.TransactionType != "BUY" {
			continue
		}
		uid := strconv.FormatUint(uint64(o.InstrumentToken), 10)
		if uid != instrumentUID {
			continue
		}
		out = append(out, types.BuyOrder{InstrumentUID: uid, Price: o.Price})
	}
	return out, nil
}

// LTP fetches the last traded price for a ticker on the configured exchange.
func (c *Client) LTP(ctx context.Context, ticker string) (float64, error) {
	key := c.p.Exchange + ":" + ticker
	quotes, err := c.kc.GetLTP(key)
	if err != nil {
		return 0, fmt.Errorf("get ltp %s: %w", key, err)
	}
	q, ok := quotes[key]
	if !ok {
		return 0, fmt.Errorf("no quote for %s", key)
	}
	return q.LastPrice, nil
}
