package sandbox

import (
	"context"
	"math/rand"
	"sync"

	"trend-signal-bot/internal/interfaces"
)

// SimQuotes is a random-walk quote source for DRY_RUN mode. Each ticker
// starts from a seed price and drifts a bounded percentage per poll, which
// is enough movement to exercise every decision path over a session.
type SimQuotes struct {
	mu     sync.Mutex
	rng    *rand.Rand
	prices map[string]float64
	seed   float64
}

var _ interfaces.QuoteSource = (*SimQuotes)(nil)

// NewSimQuotes builds a source where unseen tickers start at seedPrice.
func NewSimQuotes(seedPrice float64, rngSeed int64) *SimQuotes {
	return &SimQuotes{
		rng:    rand.New(rand.NewSource(rngSeed)),
		prices: make(map[string]float64),
		seed:   seedPrice,
	}
}

func (s *SimQuotes) LTP(ctx context.Context, ticker string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	price, ok := s.prices[ticker]
	if !ok {
		// Spread the starting points so tickers do not move in lockstep.
		price = s.seed * (0.8 + 0.4*s.rng.Float64())
	}
	// Walk up to +/-1.5% per tick.
	price *= 1 + (s.rng.Float64()-0.5)*0.03
	if price < 0.01 {
		price = 0.01
	}
	s.prices[ticker] = price
	return price, nil
}
