// Package snapshotlog persists market snapshots as per-day JSONL files and
// serves them back most-recent-first. It is the concrete history store
// behind the trend loader; files older than the retention window are
// gzip-compressed and fall out of the active window.
package snapshotlog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"trend-signal-bot/internal/interfaces"
	"trend-signal-bot/internal/types"
)

type Store struct {
	mu  sync.Mutex
	dir string
}

var _ interfaces.SnapshotStore = (*Store)(nil)

func New(dir string) *Store {
	if dir == "" {
		dir = "snapshots"
	}
	return &Store{dir: dir}
}

func (s *Store) dailyPath(t time.Time) string {
	return filepath.Join(s.dir, t.UTC().Format("2006-01-02")+".jsonl")
}

func (s *Store) Append(ctx context.Context, snap types.MarketSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Ts == 0 {
		snap.Ts = time.Now().Unix()
	}
	p := s.dailyPath(time.Now())
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// LoadRecent returns up to limit snapshots, most recent first. Files are
// walked newest-day-first; within a file, lines were appended in time order
// and are reversed.
func (s *Store) LoadRecent(ctx context.Context, limit int) ([]types.MarketSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	days := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			days = append(days, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	out := make([]types.MarketSnapshot, 0, limit)
	for _, name := range days {
		if len(out) >= limit {
			break
		}
		snaps, err := readDay(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read snapshot file %s: %w", name, err)
		}
		for i := len(snaps) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, snaps[i])
		}
	}
	return out, nil
}

func readDay(path string) ([]types.MarketSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snaps []types.MarketSnapshot
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var snap types.MarketSnapshot
		if err := json.Unmarshal([]byte(line), &snap); err != nil {
			// A torn final line from a crashed append is not worth failing
			// the whole window over.
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, sc.Err()
}

// CompressOlder gzips snapshot files whose mtime is beyond retentionDays.
func (s *Store) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(s.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".jsonl" {
			return nil
		}
		info, err := os.Stat(p)
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		return compressFile(p)
	})
}

func compressFile(p string) error {
	gz := p + ".gz"
	if _, err := os.Stat(gz); err == nil {
		return os.Remove(p)
	}

	in, err := os.Open(p)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(p)
}
