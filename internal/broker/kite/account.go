package kite

import (
	"context"
	"fmt"
	"strconv"

	"trend-signal-bot/internal/types"
)

// AccountSummary is the slice of broker profile data the bot surfaces at
// startup.
type AccountSummary struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Broker   string `json:"broker"`
}

func (c *Client) Profile(ctx context.Context) (AccountSummary, error) {
	p, err := c.kc.GetUserProfile()
	if err != nil {
		return AccountSummary{}, fmt.Errorf("get user profile: %w", err)
	}
	return AccountSummary{
		UserID:   p.UserID,
		UserName: p.UserName,
		Email:    p.Email,
		Broker:   p.Broker,
	}, nil
}

// AvailableCash reports free equity-segment cash.
func (c *Client) AvailableCash(ctx context.Context) (float64, error) {
	margins, err := c.kc.GetUserMargins()
	if err != nil {
		return 0, fmt.Errorf("get user margins: %w", err)
	}
	return margins.Equity.Available.Cash, nil
}

// Positions returns net positions in the same holding shape the engine
// consumes elsewhere.
func (c *Client) Positions(ctx context.Context) ([]types.Holding, error) {
	positions, err := c.kc.GetPositions()
	if err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	out := make([]types.Holding, 0, len(positions.Net))
	for _, p := range positions.Net {
		out = append(out, types.Holding{
			InstrumentUID: strconv.FormatUint(uint64(p.InstrumentToken), 10),
			Balance:       float64(p.Quantity),
		})
	}
	return out, nil
}
