package history

import (
	"context"
	"errors"
	"math"
	"testing"

	"trend-signal-bot/internal/types"
)

// mockSnapshotStore serves canned snapshots most-recent-first.
type mockSnapshotStore struct {
	snaps []types.MarketSnapshot
	err   error
}

func (m *mockSnapshotStore) Append(ctx context.Context, snap types.MarketSnapshot) error {
	return nil
}

func (m *mockSnapshotStore) LoadRecent(ctx context.Context, limit int) ([]types.MarketSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.snaps) > limit {
		return m.snaps[:limit], nil
	}
	return m.snaps, nil
}

func snapAt(ts int64, prices map[string]float64) types.MarketSnapshot {
	s := types.MarketSnapshot{Ts: ts}
	for _, ticker := range []string{"AAA", "BBB"} {
		if p, ok := prices[ticker]; ok {
			s.Quotes = append(s.Quotes, types.Quote{Ticker: ticker, Price: p})
		}
	}
	return s
}

func TestLoadGroupsChronologically(t *testing.T) {
	// Store order is most-recent-first: ts=3 first, ts=1 last.
	store := &mockSnapshotStore{snaps: []types.MarketSnapshot{
		snapAt(3, map[string]float64{"AAA": 103, "BBB": 203}),
		snapAt(2, map[string]float64{"AAA": 102, "BBB": 202}),
		snapAt(1, map[string]float64{"AAA": 101}),
	}}

	trends, err := NewLoader(store, 1000).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantAAA := []float64{101, 102, 103}
	if len(trends["AAA"]) != len(wantAAA) {
		t.Fatalf("AAA series length = %d, want %d", len(trends["AAA"]), len(wantAAA))
	}
	for i, v := range wantAAA {
		if trends["AAA"][i] != v {
			t.Errorf("AAA[%d] = %v, want %v (series must be oldest-first)", i, trends["AAA"][i], v)
		}
	}
	// BBB is missing from the oldest snapshot; its series is just shorter.
	if got := trends["BBB"]; len(got) != 2 || got[0] != 202 || got[1] != 203 {
		t.Errorf("BBB series = %v, want [202 203]", got)
	}
}

func TestLoadEmptyStoreIsDataUnavailable(t *testing.T) {
	store := &mockSnapshotStore{}

	_, err := NewLoader(store, 1000).Load(context.Background())
	if !errors.Is(err, ErrNoHistory) {
		t.Fatalf("err = %v, want ErrNoHistory", err)
	}
}

func TestLoadFrameBound(t *testing.T) {
	snaps := []types.MarketSnapshot{}
	for i := 10; i >= 1; i-- {
		snaps = append(snaps, snapAt(int64(i), map[string]float64{"AAA": float64(100 + i)}))
	}
	store := &mockSnapshotStore{snaps: snaps}

	trends, err := NewLoader(store, 4).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Only the 4 most recent snapshots survive, in time order.
	want := []float64{107, 108, 109, 110}
	got := trends["AAA"]
	if len(got) != len(want) {
		t.Fatalf("series length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AAA[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoadDropsNonFinitePrices(t *testing.T) {
	store := &mockSnapshotStore{snaps: []types.MarketSnapshot{
		snapAt(2, map[string]float64{"AAA": math.NaN()}),
		snapAt(1, map[string]float64{"AAA": 101}),
	}}

	trends, err := NewLoader(store, 1000).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := trends["AAA"]; len(got) != 1 || got[0] != 101 {
		t.Errorf("AAA series = %v, want [101]", got)
	}
}

func TestLoadPropagatesStoreError(t *testing.T) {
	store := &mockSnapshotStore{err: errors.New("disk gone")}

	if _, err := NewLoader(store, 1000).Load(context.Background()); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
