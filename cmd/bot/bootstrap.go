package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"trend-signal-bot/internal/broker/kite"
	"trend-signal-bot/internal/engine"
	"trend-signal-bot/internal/forecast"
	"trend-signal-bot/internal/interfaces"
	"trend-signal-bot/internal/logger"
	"trend-signal-bot/internal/sandbox"
	"trend-signal-bot/internal/snapshotlog"
	"trend-signal-bot/internal/store"
)

const (
	snapshotDir = "snapshots"
	signalDir   = "signals"
)

// initializeSystem loads the environment and sets up logging and tracing.
func initializeSystem() error {
	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldSnapshots gzips snapshot files past the configured retention.
func compressOldSnapshots(ctx context.Context, snaps *snapshotlog.Store, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	if err := snaps.CompressOlder(retentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old snapshot logs", "error", err)
	}
}

// stores bundles the four backends the engine reads from plus the quote
// source the poll loop samples.
type stores struct {
	dir      interfaces.InstrumentDirectory
	orders   interfaces.OrderStore
	holdings interfaces.HoldingsStore
	quotes   interfaces.QuoteSource
}

// initializeStores wires either the live Kite client or the in-process
// sandbox behind the same interfaces, depending on mode.
func initializeStores(ctx context.Context, cfg *store.Config) (stores, error) {
	if cfg.Mode == "LIVE" {
		client := kite.New(kite.Params{
			APIKey:      os.Getenv("KITE_API_KEY"),
			AccessToken: os.Getenv("KITE_ACCESS_TOKEN"),
			Exchange:    cfg.Exchange,
		})
		if profile, err := client.Profile(ctx); err != nil {
			logger.Warn(ctx, "Could not fetch broker profile", "error", err)
		} else {
			logger.Info(ctx, "Broker session active", "user_id", profile.UserID, "broker", profile.Broker)
		}
		if cash, err := client.AvailableCash(ctx); err == nil {
			logger.Info(ctx, "Available cash", "cash", cash)
		}
		return stores{dir: client, orders: client, holdings: client, quotes: client}, nil
	}

	logger.Warn(ctx, "Running in DRY_RUN mode - using sandbox account and simulated quotes")
	accounts := sandbox.NewAccounts()
	accountID := accounts.Open()
	balance, err := accounts.PayIn(accountID, sandbox.MoneyFromDecimal(decimal.NewFromFloat(cfg.Strategy.Balance), "INR"))
	if err != nil {
		return stores{}, fmt.Errorf("fund sandbox account: %w", err)
	}
	logger.Info(ctx, "Sandbox account funded", "account_id", accountID, "units", balance.Units, "nano", balance.Nano)

	return stores{
		dir:      sandbox.NewStaticDirectory(cfg.Universe),
		orders:   sandbox.EmptyOrderStore{},
		holdings: accounts.HoldingsStore(accountID),
		quotes:   sandbox.NewSimQuotes(100, time.Now().UnixNano()),
	}, nil
}

func initializeForecast(cfg *store.Config) *forecast.Service {
	return forecast.NewService(forecast.Config{
		Enabled:     cfg.Forecast.Enabled,
		MaxArticles: cfg.Forecast.MaxArticles,
		CacheTTL:    time.Duration(cfg.Forecast.CacheMinutes) * time.Minute,
		Timeout:     time.Duration(cfg.Forecast.TimeoutSeconds) * time.Second,
	})
}

func initializeEngine(cfg *store.Config, snaps *snapshotlog.Store, st stores) interfaces.Engine {
	return engine.New(engine.Config{
		StopLossAbs:    cfg.Strategy.StopLossAbs,
		TakeProfitAbs:  cfg.Strategy.TakeProfitAbs,
		IsReverse:      cfg.Strategy.IsReverse,
		LookbackPeriod: cfg.Strategy.LookbackPeriod,
		FrameSize:      cfg.Strategy.HistoryFrameSize,
	}, snaps, st.dir, st.orders, st.holdings)
}
