package kite

import (
	"strconv"
	"strings"
	"sync"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"trend-signal-bot/internal/types"
)

// instrumentMapper caches the exchange instrument dump keyed by ticker. The
// dump is large and changes daily at most, so one load per process is fine.
type instrumentMapper struct {
	mu       sync.RWMutex
	bySymbol map[string]types.Instrument
	loaded   bool
}

func newInstrumentMapper() *instrumentMapper {
	return &instrumentMapper{bySymbol: make(map[string]types.Instrument)}
}

func (m *instrumentMapper) ensureLoaded(kc *kiteconnect.Client, exchange string) error {
	m.mu.RLock()
	loaded := m.loaded
	m.mu.RUnlock()
	if loaded {
		return nil
	}

	instruments, err := kc.GetInstrumentsByExchange(exchange)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return nil
	}
	for _, inst := range instruments {
		m.bySymbol[inst.Tradingsymbol] = types.Instrument{
			Ticker: inst.Tradingsymbol,
			UID:    strconv.Itoa(inst.InstrumentToken),
			Type:   classify(inst.InstrumentType),
		}
	}
	m.loaded = true
	return nil
}

func (m *instrumentMapper) byTicker(ticker string) (types.Instrument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.bySymbol[ticker]
	return inst, ok
}

// classify maps Kite instrument types onto the two classes the risk model
// distinguishes: plain equity is a share, everything else halves its SL/TP
// thresholds.
func classify(kiteType string) types.InstrumentType {
	if strings.EqualFold(kiteType, "EQ") {
		return types.InstrumentShare
	}
	return types.InstrumentOther
}
