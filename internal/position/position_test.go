package position

import (
	"context"
	"errors"
	"testing"

	"trend-signal-bot/internal/types"
)

type mockOrderStore struct {
	orders map[string][]types.BuyOrder
	err    error
}

func (m *mockOrderStore) FindBuyOrders(ctx context.Context, uid string) ([]types.BuyOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders[uid], nil
}

func TestBalanceOf(t *testing.T) {
	pc := NewContext([]types.Holding{
		{InstrumentUID: "uid-1", Balance: 10},
		{InstrumentUID: "uid-2", Balance: 3},
	}, &mockOrderStore{})

	if got := pc.BalanceOf("uid-1"); got != 10 {
		t.Errorf("BalanceOf(uid-1) = %v, want 10", got)
	}
	if got := pc.BalanceOf("uid-404"); got != 0 {
		t.Errorf("BalanceOf(unknown) = %v, want 0", got)
	}
}

func TestAverageBuyPrice(t *testing.T) {
	pc := NewContext(nil, &mockOrderStore{orders: map[string][]types.BuyOrder{
		"uid-1": {
			{InstrumentUID: "uid-1", Price: 100},
			{InstrumentUID: "uid-1", Price: 110},
			{InstrumentUID: "uid-1", Price: 120},
		},
	}})

	got, err := pc.AverageBuyPrice(context.Background(), "uid-1", 90)
	if err != nil {
		t.Fatalf("AverageBuyPrice: %v", err)
	}
	if got != 110 {
		t.Errorf("AverageBuyPrice = %v, want 110", got)
	}
}

func TestAverageBuyPriceFlatPositionFallsBackToCurrent(t *testing.T) {
	pc := NewContext(nil, &mockOrderStore{})

	got, err := pc.AverageBuyPrice(context.Background(), "uid-1", 97.5)
	if err != nil {
		t.Fatalf("AverageBuyPrice: %v", err)
	}
	if got != 97.5 {
		t.Errorf("AverageBuyPrice = %v, want current price 97.5", got)
	}
}

func TestAverageBuyPriceStoreError(t *testing.T) {
	pc := NewContext(nil, &mockOrderStore{err: errors.New("broker down")})

	if _, err := pc.AverageBuyPrice(context.Background(), "uid-1", 100); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
