package interfaces

import (
	"context"

	"trend-signal-bot/internal/types"
)

type Engine interface {
	Evaluate(ctx context.Context, snap types.MarketSnapshot, forecast types.Forecast) (*types.CycleResult, error)
}
