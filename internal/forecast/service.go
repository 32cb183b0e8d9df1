package forecast

import (
	"context"
	"sync"
	"time"

	"trend-signal-bot/internal/logger"
	"trend-signal-bot/internal/types"
)

type Config struct {
	Enabled     bool
	MaxArticles int
	CacheTTL    time.Duration
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		MaxArticles: 12,
		CacheTTL:    time.Hour,
		Timeout:     30 * time.Second,
	}
}

// Service produces the cycle's forecast map. Probabilities are cached per
// ticker for CacheTTL so a short poll interval does not hammer the news
// sites.
type Service struct {
	scraper *Scraper
	cfg     Config

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	prob float64
	at   time.Time
}

func NewService(cfg Config) *Service {
	return &Service{
		scraper: NewScraper(cfg.Timeout),
		cfg:     cfg,
		cache:   make(map[string]cacheEntry),
	}
}

// Probabilities builds the forecast for one cycle. A ticker whose scrape
// fails is simply absent from the map and reads as probability 0 downstream.
// With the service disabled the map is empty, which blocks all trend entries
// by construction.
func (s *Service) Probabilities(ctx context.Context, tickers []string) types.Forecast {
	out := types.Forecast{}
	if !s.cfg.Enabled {
		return out
	}
	for _, ticker := range tickers {
		if p, ok := s.cached(ticker); ok {
			out[ticker] = p
			continue
		}
		headlines, err := s.scraper.Headlines(ctx, ticker, s.cfg.MaxArticles)
		if err != nil || len(headlines) == 0 {
			logger.Warn(ctx, "No forecast for ticker", "ticker", ticker, "error", err)
			continue
		}
		p := scoreHeadlines(headlines)
		s.put(ticker, p)
		out[ticker] = p
	}
	return out
}

func (s *Service) cached(ticker string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.cache[ticker]
	if !ok || time.Since(e.at) > s.cfg.CacheTTL {
		return 0, false
	}
	return e.prob, true
}

func (s *Service) put(ticker string, prob float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[ticker] = cacheEntry{prob: prob, at: time.Now()}
}
