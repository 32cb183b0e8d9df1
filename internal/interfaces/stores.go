package interfaces

import (
	"context"
	"errors"

	"trend-signal-bot/internal/types"
)

// ErrInstrumentNotFound is wrapped by InstrumentDirectory implementations
// when a ticker has no matching instrument.
var ErrInstrumentNotFound = errors.New("instrument not found")

// SnapshotStore persists market snapshots and serves them back
// most-recent-first.
type SnapshotStore interface {
	Append(ctx context.Context, snap types.MarketSnapshot) error
	LoadRecent(ctx context.Context, limit int) ([]types.MarketSnapshot, error)
}

// InstrumentDirectory resolves tickers to instruments. Lookup fails with an
// error wrapping types-level not-found semantics for unknown tickers.
type InstrumentDirectory interface {
	Lookup(ctx context.Context, ticker string) (types.Instrument, error)
}

// OrderStore lists standing buy orders for one instrument.
type OrderStore interface {
	FindBuyOrders(ctx context.Context, instrumentUID string) ([]types.BuyOrder, error)
}

// HoldingsStore returns the current holdings as one consistent snapshot.
type HoldingsStore interface {
	Snapshot(ctx context.Context) ([]types.Holding, error)
}

// QuoteSource fetches the current price for one ticker.
type QuoteSource interface {
	LTP(ctx context.Context, ticker string) (float64, error)
}
