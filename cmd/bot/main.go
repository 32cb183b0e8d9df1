package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trend-signal-bot/internal/interfaces"
	"trend-signal-bot/internal/logger"
	"trend-signal-bot/internal/metrics"
	"trend-signal-bot/internal/signallog"
	"trend-signal-bot/internal/snapshotlog"
	"trend-signal-bot/internal/store"
	"trend-signal-bot/internal/types"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	snaps := snapshotlog.New(snapshotDir)
	compressOldSnapshots(ctx, snaps, cfg.Log.RetentionDays)
	journal := signallog.New(signalDir)

	st, err := initializeStores(ctx, cfg)
	must(err)

	forecasts := initializeForecast(cfg)
	eng := initializeEngine(cfg, snaps, st)

	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr)
		defer func() { _ = srv.Shutdown(context.Background()) }()
		logger.Info(ctx, "Metrics endpoint up", "addr", cfg.Metrics.Addr)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()

	logger.Info(ctx, "Bot started", "mode", cfg.Mode, "universe", len(cfg.Universe), "poll_seconds", cfg.PollSeconds)
	runCycle(ctx, cfg, snaps, journal, st, forecasts, eng)

	for {
		select {
		case <-tick.C:
			runCycle(ctx, cfg, snaps, journal, st, forecasts, eng)
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			_ = logger.Shutdown(shutdownCtx)
			done()
			return
		case <-ctx.Done():
			return
		}
	}
}

// runCycle samples current quotes for the universe, persists the snapshot,
// evaluates it, and records the resulting signals.
func runCycle(ctx context.Context, cfg *store.Config, snaps *snapshotlog.Store, journal *signallog.Journal, st stores, forecasts forecastSource, eng interfaces.Engine) {
	snap := types.MarketSnapshot{Ts: time.Now().Unix()}
	for _, ticker := range cfg.Universe {
		price, err := st.quotes.LTP(ctx, ticker)
		if err != nil {
			logger.Warn(ctx, "Quote fetch failed, skipping ticker", "ticker", ticker, "error", err)
			continue
		}
		snap.Quotes = append(snap.Quotes, types.Quote{Ticker: ticker, Price: price})
	}
	if len(snap.Quotes) == 0 {
		logger.Warn(ctx, "No quotes this cycle")
		return
	}

	if err := snaps.Append(ctx, snap); err != nil {
		logger.ErrorWithErr(ctx, "Failed to persist snapshot", err)
	}

	fc := forecasts.Probabilities(ctx, tickersOf(snap))

	res, err := eng.Evaluate(ctx, snap, fc)
	if err != nil {
		metrics.CycleErrorsTotal.Inc()
		logger.ErrorWithErr(ctx, "Evaluation cycle failed", err)
		return
	}
	metrics.CyclesTotal.Inc()

	for _, sig := range res.Signals {
		metrics.SignalsTotal.WithLabelValues(sig.Ticker, string(sig.Action)).Inc()
		if err := journal.Append(sig); err != nil {
			logger.Warn(ctx, "Failed to journal signal", "ticker", sig.Ticker, "error", err)
		}
		fmt.Println(sig.String())
	}
	for _, fail := range res.Failures {
		metrics.TickerFailuresTotal.WithLabelValues(fail.Ticker).Inc()
	}
}

// forecastSource is the slice of the forecast service the loop needs.
type forecastSource interface {
	Probabilities(ctx context.Context, tickers []string) types.Forecast
}

func tickersOf(snap types.MarketSnapshot) []string {
	out := make([]string, len(snap.Quotes))
	for i, q := range snap.Quotes {
		out[i] = q.Ticker
	}
	return out
}
