// Package sandbox is an in-process stand-in for a broker sandbox: account
// lifecycle, pay-in, and holdings, used in DRY_RUN mode so the engine runs
// against the same store interfaces as in LIVE mode.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"trend-signal-bot/internal/interfaces"
	"trend-signal-bot/internal/types"
)

var ErrAccountNotFound = errors.New("sandbox account not found")

type account struct {
	cash     decimal.Decimal
	currency string
	holdings map[string]float64
}

// Accounts manages sandbox accounts. All operations are safe for concurrent
// use.
type Accounts struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]*account
}

func NewAccounts() *Accounts {
	return &Accounts{accounts: make(map[string]*account)}
}

// Open creates a sandbox account and returns its id.
func (a *Accounts) Open() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	id := fmt.Sprintf("sandbox-%04d", a.seq)
	a.accounts[id] = &account{cash: decimal.Zero, holdings: make(map[string]float64)}
	return id
}

// Close removes one account.
func (a *Accounts) Close(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.accounts[id]; !ok {
		return fmt.Errorf("close %q: %w", id, ErrAccountNotFound)
	}
	delete(a.accounts, id)
	return nil
}

// CloseAll removes every open sandbox account.
func (a *Accounts) CloseAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts = make(map[string]*account)
}

// PayIn deposits money into an account and returns the new balance.
func (a *Accounts) PayIn(id string, m MoneyValue) (MoneyValue, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	acc, ok := a.accounts[id]
	if !ok {
		return MoneyValue{}, fmt.Errorf("pay in to %q: %w", id, ErrAccountNotFound)
	}
	acc.cash = acc.cash.Add(m.Decimal())
	if acc.currency == "" {
		acc.currency = m.Currency
	}
	return MoneyFromDecimal(acc.cash, acc.currency), nil
}

// Cash returns the account's current balance.
func (a *Accounts) Cash(id string) (MoneyValue, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	acc, ok := a.accounts[id]
	if !ok {
		return MoneyValue{}, fmt.Errorf("cash of %q: %w", id, ErrAccountNotFound)
	}
	return MoneyFromDecimal(acc.cash, acc.currency), nil
}

// SetHolding fixes the held balance of one instrument on the account.
func (a *Accounts) SetHolding(id, instrumentUID string, balance float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	acc, ok := a.accounts[id]
	if !ok {
		return fmt.Errorf("set holding on %q: %w", id, ErrAccountNotFound)
	}
	if balance == 0 {
		delete(acc.holdings, instrumentUID)
	} else {
		acc.holdings[instrumentUID] = balance
	}
	return nil
}

// HoldingsStore binds one sandbox account to the engine's HoldingsStore
// interface.
type HoldingsStore struct {
	accounts  *Accounts
	accountID string
}

var _ interfaces.HoldingsStore = (*HoldingsStore)(nil)

func (a *Accounts) HoldingsStore(accountID string) *HoldingsStore {
	return &HoldingsStore{accounts: a, accountID: accountID}
}

func (h *HoldingsStore) Snapshot(ctx context.Context) ([]types.Holding, error) {
	h.accounts.mu.Lock()
	defer h.accounts.mu.Unlock()
	acc, ok := h.accounts.accounts[h.accountID]
	if !ok {
		return nil, fmt.Errorf("holdings of %q: %w", h.accountID, ErrAccountNotFound)
	}
	out := make([]types.Holding, 0, len(acc.holdings))
	for uid, bal := range acc.holdings {
		out = append(out, types.Holding{InstrumentUID: uid, Balance: bal})
	}
	return out, nil
}

// EmptyOrderStore is the DRY_RUN order store: no standing buy orders, so
// every position prices off the current quote.
type EmptyOrderStore struct{}

var _ interfaces.OrderStore = EmptyOrderStore{}

func (EmptyOrderStore) FindBuyOrders(ctx context.Context, instrumentUID string) ([]types.BuyOrder, error) {
	return nil, nil
}

// StaticDirectory resolves the configured universe without a broker; every
// ticker is treated as a share.
type StaticDirectory struct {
	instruments map[string]types.Instrument
}

var _ interfaces.InstrumentDirectory = (*StaticDirectory)(nil)

func NewStaticDirectory(tickers []string) *StaticDirectory {
	d := &StaticDirectory{instruments: make(map[string]types.Instrument, len(tickers))}
	for _, t := range tickers {
		d.instruments[t] = types.Instrument{Ticker: t, UID: "sim-" + t, Type: types.InstrumentShare}
	}
	return d
}

func (d *StaticDirectory) Lookup(ctx context.Context, ticker string) (types.Instrument, error) {
	inst, ok := d.instruments[ticker]
	if !ok {
		return types.Instrument{}, fmt.Errorf("lookup %q: %w", ticker, interfaces.ErrInstrumentNotFound)
	}
	return inst, nil
}
