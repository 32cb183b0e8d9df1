package types

import "fmt"

type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
	Hold Action = "HOLD"
)

// Quote is one ticker's current price inside a market snapshot.
type Quote struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
}

// MarketSnapshot is the ordered set of quotes for one evaluation cycle.
// Quote order defines the engine's iteration and output order.
type MarketSnapshot struct {
	Ts     int64   `json:"ts"`
	Quotes []Quote `json:"quotes"`
}

type InstrumentType string

const (
	InstrumentShare InstrumentType = "share"
	InstrumentOther InstrumentType = "other"
)

type Instrument struct {
	Ticker string         `json:"ticker"`
	UID    string         `json:"uid"`
	Type   InstrumentType `json:"instrument_type"`
}

type Holding struct {
	InstrumentUID string  `json:"instrument_uid"`
	Balance       float64 `json:"balance"`
}

type BuyOrder struct {
	InstrumentUID string  `json:"instrument_uid"`
	Price         float64 `json:"price"`
}

// Forecast maps ticker to an externally supplied probability in [0,1].
// Missing tickers read as 0.
type Forecast map[string]float64

func (f Forecast) Prob(ticker string) float64 { return f[ticker] }

// Signal is the per-ticker outcome of one cycle. StopPrice/TakePrice are set
// only on risk-exit SELLs (Tag "stop-loss" / "take-profit").
type Signal struct {
	Ticker    string  `json:"ticker"`
	Action    Action  `json:"action"`
	Tag       string  `json:"tag,omitempty"`
	StopPrice float64 `json:"stop_price,omitempty"`
	TakePrice float64 `json:"take_price,omitempty"`
}

func (s Signal) String() string {
	switch {
	case s.Tag == "stop-loss":
		return fmt.Sprintf("📉 SELL %s SL: %.2f", s.Ticker, s.StopPrice)
	case s.Tag == "take-profit":
		return fmt.Sprintf("📉 SELL %s TP: %.2f", s.Ticker, s.TakePrice)
	case s.Action == Buy:
		return fmt.Sprintf("📈 BUY %s", s.Ticker)
	case s.Action == Sell:
		return fmt.Sprintf("📉 SELL %s", s.Ticker)
	default:
		return fmt.Sprintf("⏳ HOLD %s - No clear action", s.Ticker)
	}
}

// TickerError records one ticker's failed pipeline without aborting the cycle.
type TickerError struct {
	Ticker string `json:"ticker"`
	Err    error  `json:"-"`
	Reason string `json:"reason"`
}

func (e TickerError) Error() string { return e.Ticker + ": " + e.Reason }

func (e TickerError) Unwrap() error { return e.Err }

// CycleResult is the caller-visible outcome of one evaluation cycle. An empty
// Signals list with empty Failures means "nothing to do", which is distinct
// from the cycle-fatal no-history error returned by the engine itself.
type CycleResult struct {
	Signals  []Signal      `json:"signals"`
	Failures []TickerError `json:"failures,omitempty"`
}
