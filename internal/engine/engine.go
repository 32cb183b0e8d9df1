// Package engine evaluates per-instrument trading signals once per cycle.
// Each cycle is a pure function of its inputs: no state survives between
// calls to Evaluate.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"trend-signal-bot/internal/history"
	"trend-signal-bot/internal/interfaces"
	"trend-signal-bot/internal/logger"
	"trend-signal-bot/internal/position"
	"trend-signal-bot/internal/risk"
	"trend-signal-bot/internal/ta"
	"trend-signal-bot/internal/types"
)

// The ATR period is fixed; only the trend lookback is configurable.
const atrPeriod = 14

// ErrInvalidInput marks a ticker whose price data cannot be evaluated.
var ErrInvalidInput = errors.New("invalid price input")

type Config struct {
	StopLossAbs    float64
	TakeProfitAbs  float64
	IsReverse      bool
	LookbackPeriod int
	FrameSize      int
}

type Engine struct {
	cfg      Config
	dir      interfaces.InstrumentDirectory
	orders   interfaces.OrderStore
	holdings interfaces.HoldingsStore
	loader   *history.Loader
	model    risk.Model
}

var _ interfaces.Engine = (*Engine)(nil)

func New(cfg Config, snaps interfaces.SnapshotStore, dir interfaces.InstrumentDirectory, orders interfaces.OrderStore, holdings interfaces.HoldingsStore) *Engine {
	return &Engine{
		cfg:      cfg,
		dir:      dir,
		orders:   orders,
		holdings: holdings,
		loader:   history.NewLoader(snaps, cfg.FrameSize),
		model:    risk.Model{StopLossAbs: cfg.StopLossAbs, TakeProfitAbs: cfg.TakeProfitAbs},
	}
}

// Evaluate runs one cycle over every ticker in the snapshot, in snapshot
// order. Per-ticker failures land in the result's Failures list; only a
// total absence of history (or a failing holdings/history store) aborts the
// cycle. Tickers are evaluated concurrently against a holdings snapshot
// taken once before fan-out.
func (e *Engine) Evaluate(ctx context.Context, snap types.MarketSnapshot, forecast types.Forecast) (*types.CycleResult, error) {
	ctx, span := logger.StartSpan(ctx, "evaluate-cycle")
	defer span.End()

	trends, err := e.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	holdings, err := e.holdings.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("holdings snapshot: %w", err)
	}
	pc := position.NewContext(holdings, e.orders)

	type slot struct {
		sig  *types.Signal
		fail *types.TickerError
	}
	slots := make([]slot, len(snap.Quotes))

	var wg sync.WaitGroup
	for i, q := range snap.Quotes {
		wg.Add(1)
		go func(i int, q types.Quote) {
			defer wg.Done()
			sig, err := e.evaluateTicker(ctx, q, trends[q.Ticker], forecast, pc)
			if err != nil {
				slots[i].fail = &types.TickerError{Ticker: q.Ticker, Err: err, Reason: err.Error()}
				return
			}
			slots[i].sig = sig
		}(i, q)
	}
	wg.Wait()

	res := &types.CycleResult{}
	for _, s := range slots {
		switch {
		case s.fail != nil:
			logger.Warn(ctx, "Ticker evaluation failed", "ticker", s.fail.Ticker, "error", s.fail.Err)
			res.Failures = append(res.Failures, *s.fail)
		case s.sig != nil:
			logger.Signal(ctx, s.sig.Ticker, string(s.sig.Action), s.sig.Tag)
			res.Signals = append(res.Signals, *s.sig)
		}
	}
	logger.Cycle(ctx, len(res.Signals), len(res.Failures))
	return res, nil
}

// evaluateTicker runs the fixed-priority decision rule for one ticker:
// stop-loss exit, then take-profit exit, then the forecast-gated trend rule.
// A nil, nil return means the ticker was skipped for lack of trend data.
func (e *Engine) evaluateTicker(ctx context.Context, q types.Quote, prices []float64, forecast types.Forecast, pc *position.Context) (*types.Signal, error) {
	if math.IsNaN(q.Price) || math.IsInf(q.Price, 0) {
		return nil, fmt.Errorf("%w: non-finite current price", ErrInvalidInput)
	}

	inst, err := e.dir.Lookup(ctx, q.Ticker)
	if err != nil {
		return nil, err
	}

	avgBuy, err := pc.AverageBuyPrice(ctx, inst.UID, q.Price)
	if err != nil {
		return nil, err
	}
	if avgBuy == 0 {
		return nil, fmt.Errorf("%w: zero average buy price", ErrInvalidInput)
	}
	changePct := (q.Price - avgBuy) / avgBuy * 100

	atrValue, ok := ta.ATR(prices, atrPeriod)
	if !ok {
		// Too little history to seed ATR: degrade the multipliers to the raw
		// configured thresholds instead of dropping the ticker.
		atrValue = 1
	}
	slMult, tpMult, riskOK := e.model.Multipliers(inst.Type, atrValue)

	balance := pc.BalanceOf(inst.UID)

	// Risk exits run first and only against an open position. A zero ATR
	// leaves the multipliers undefined, so exit checks are skipped entirely
	// and evaluation falls through to the trend rule.
	if riskOK && balance > 0 {
		if changePct <= -slMult {
			logger.Debug(ctx, "Stop-loss exit", "ticker", q.Ticker, "change_pct", changePct, "sl_multiplier", slMult)
			return &types.Signal{
				Ticker:    q.Ticker,
				Action:    types.Sell,
				Tag:       "stop-loss",
				StopPrice: q.Price - slMult*atrValue,
			}, nil
		}
		if changePct >= tpMult {
			logger.Debug(ctx, "Take-profit exit", "ticker", q.Ticker, "change_pct", changePct, "tp_multiplier", tpMult)
			return &types.Signal{
				Ticker:    q.Ticker,
				Action:    types.Sell,
				Tag:       "take-profit",
				TakePrice: q.Price + tpMult*atrValue,
			}, nil
		}
	}

	sma, smaOK := ta.SMA(prices, e.cfg.LookbackPeriod)
	ema, emaOK := ta.EMA(prices, e.cfg.LookbackPeriod)
	if !smaOK || !emaOK {
		logger.Debug(ctx, "Skipping ticker, insufficient trend data", "ticker", q.Ticker, "series_len", len(prices))
		return nil, nil
	}
	rsi, rsiOK := ta.RSI(prices, e.cfg.LookbackPeriod)
	prob := forecast.Prob(q.Ticker)

	buy, sell := types.Buy, types.Sell
	if e.cfg.IsReverse {
		buy, sell = sell, buy
	}

	switch {
	case q.Price > ema && q.Price > sma && prob >= 0.4 && rsiOK && rsi < 35:
		return &types.Signal{Ticker: q.Ticker, Action: buy}, nil
	case q.Price < ema && q.Price < sma && prob >= 0.6 && rsiOK && rsi > 70:
		return &types.Signal{Ticker: q.Ticker, Action: sell}, nil
	default:
		return &types.Signal{Ticker: q.Ticker, Action: types.Hold}, nil
	}
}
