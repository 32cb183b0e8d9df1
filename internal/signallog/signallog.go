// Package signallog journals emitted signals as per-day JSONL files. Signals
// are transient in the engine; this is the delivery-side record of what was
// produced, kept outside the core.
package signallog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"trend-signal-bot/internal/types"
)

type Entry struct {
	Time      string  `json:"time"`
	Ticker    string  `json:"ticker"`
	Action    string  `json:"action"`
	Tag       string  `json:"tag,omitempty"`
	StopPrice float64 `json:"stop_price,omitempty"`
	TakePrice float64 `json:"take_price,omitempty"`
	Rendered  string  `json:"rendered"`
}

type Journal struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) *Journal {
	if dir == "" {
		dir = "signals"
	}
	return &Journal{dir: dir}
}

func (j *Journal) Append(sig types.Signal) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now().UTC()
	e := Entry{
		Time:      now.Format("2006-01-02 15:04:05"),
		Ticker:    sig.Ticker,
		Action:    string(sig.Action),
		Tag:       sig.Tag,
		StopPrice: sig.StopPrice,
		TakePrice: sig.TakePrice,
		Rendered:  sig.String(),
	}
	p := filepath.Join(j.dir, now.Format("2006-01-02")+".jsonl")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}
