package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const validConfig = `
mode: DRY_RUN
exchange: NSE
universe: [AAA, BBB]
strategy:
  balance: 100000
  stop_loss_abs: 3.0
  take_profit_abs: 5.0
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PollSeconds != 60 {
		t.Errorf("PollSeconds default = %d, want 60", cfg.PollSeconds)
	}
	if cfg.Strategy.LookbackPeriod != 20 {
		t.Errorf("LookbackPeriod default = %d, want 20", cfg.Strategy.LookbackPeriod)
	}
	if cfg.Strategy.HistoryFrameSize != 1000 {
		t.Errorf("HistoryFrameSize default = %d, want 1000", cfg.Strategy.HistoryFrameSize)
	}
	if cfg.Strategy.IsReverse {
		t.Error("IsReverse should default to false")
	}
}

func TestLoadConfigRejectsBadMode(t *testing.T) {
	bad := `
mode: PAPER
universe: [AAA]
strategy:
  stop_loss_abs: 3.0
  take_profit_abs: 5.0
`
	if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
		t.Fatal("expected validation error for bad mode")
	}
}

func TestLoadConfigRejectsEmptyUniverse(t *testing.T) {
	bad := `
mode: DRY_RUN
universe: []
strategy:
  stop_loss_abs: 3.0
  take_profit_abs: 5.0
`
	if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
		t.Fatal("expected validation error for empty universe")
	}
}

func TestLoadConfigRejectsNonPositiveThresholds(t *testing.T) {
	bad := `
mode: DRY_RUN
universe: [AAA]
strategy:
  stop_loss_abs: 0
  take_profit_abs: 5.0
`
	if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
		t.Fatal("expected validation error for zero stop_loss_abs")
	}
}
