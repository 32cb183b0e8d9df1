package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode        string   `yaml:"mode"`
	PollSeconds int      `yaml:"poll_seconds"`
	Exchange    string   `yaml:"exchange"`
	Universe    []string `yaml:"universe"`
	Strategy    struct {
		Balance          float64 `yaml:"balance"`
		StopLossAbs      float64 `yaml:"stop_loss_abs"`
		TakeProfitAbs    float64 `yaml:"take_profit_abs"`
		IsReverse        bool    `yaml:"is_reverse"`
		LookbackPeriod   int     `yaml:"lookback_period"`
		HistoryFrameSize int     `yaml:"history_frame_size"`
	} `yaml:"strategy"`
	Forecast struct {
		Enabled        bool `yaml:"enabled"`
		MaxArticles    int  `yaml:"max_articles"`
		CacheMinutes   int  `yaml:"cache_minutes"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"forecast"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		RetentionDays int `yaml:"retention_days"`
	} `yaml:"log"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if len(c.Universe) == 0 {
		return errors.New("universe cannot be empty")
	}
	if c.Strategy.StopLossAbs <= 0 {
		return fmt.Errorf("strategy.stop_loss_abs must be positive, got %.2f", c.Strategy.StopLossAbs)
	}
	if c.Strategy.TakeProfitAbs <= 0 {
		return fmt.Errorf("strategy.take_profit_abs must be positive, got %.2f", c.Strategy.TakeProfitAbs)
	}
	if c.Strategy.LookbackPeriod <= 1 {
		return fmt.Errorf("strategy.lookback_period must be > 1, got %d", c.Strategy.LookbackPeriod)
	}
	if c.Strategy.HistoryFrameSize <= 0 {
		return fmt.Errorf("strategy.history_frame_size must be positive, got %d", c.Strategy.HistoryFrameSize)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.PollSeconds == 0 {
		c.PollSeconds = 60
	}
	if c.Strategy.LookbackPeriod == 0 {
		c.Strategy.LookbackPeriod = 20
	}
	if c.Strategy.HistoryFrameSize == 0 {
		c.Strategy.HistoryFrameSize = 1000
	}
	if c.Forecast.MaxArticles == 0 {
		c.Forecast.MaxArticles = 12
	}
	if c.Forecast.CacheMinutes == 0 {
		c.Forecast.CacheMinutes = 60
	}
	if c.Forecast.TimeoutSeconds == 0 {
		c.Forecast.TimeoutSeconds = 30
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
