// Package history reshapes persisted market snapshots into per-ticker price
// series for the indicator math.
package history

import (
	"context"
	"errors"
	"fmt"
	"math"

	"trend-signal-bot/internal/interfaces"
	"trend-signal-bot/internal/logger"
)

// ErrNoHistory means the store holds zero snapshots. Callers must treat this
// as "data unavailable", never as "all tickers absent".
var ErrNoHistory = errors.New("no historical snapshots found")

type Loader struct {
	store interfaces.SnapshotStore
	frame int
}

func NewLoader(store interfaces.SnapshotStore, frame int) *Loader {
	return &Loader{store: store, frame: frame}
}

// Load fetches up to frame recent snapshots and regroups them into
// CHRONOLOGICAL per-ticker price series (oldest first). The store returns
// snapshots most-recent-first, so the window is walked backwards before
// grouping; EMA/RSI/ATR are order-sensitive recurrences and need time order.
// Non-finite prices are rejected at this boundary and never reach the
// indicators.
func (l *Loader) Load(ctx context.Context) (map[string][]float64, error) {
	snaps, err := l.store.LoadRecent(ctx, l.frame)
	if err != nil {
		return nil, fmt.Errorf("load recent snapshots: %w", err)
	}
	if len(snaps) == 0 {
		return nil, ErrNoHistory
	}

	trends := make(map[string][]float64)
	for i := len(snaps) - 1; i >= 0; i-- {
		for _, q := range snaps[i].Quotes {
			if math.IsNaN(q.Price) || math.IsInf(q.Price, 0) {
				logger.Warn(ctx, "Dropping non-finite price from history", "ticker", q.Ticker)
				continue
			}
			trends[q.Ticker] = append(trends[q.Ticker], q.Price)
		}
	}
	return trends, nil
}
