// Package risk converts volatility into stop-loss/take-profit multipliers.
package risk

import "trend-signal-bot/internal/types"

// Model holds the absolute SL/TP thresholds from configuration. The
// absolutes apply to shares; every other instrument class trades at half
// the threshold.
type Model struct {
	StopLossAbs   float64
	TakeProfitAbs float64
}

// Multipliers scales the instrument's SL/TP thresholds by ATR. A zero ATR
// leaves the multipliers undefined (ok=false): the engine must skip risk-exit
// checks for that ticker instead of dividing by zero.
func (m Model) Multipliers(instType types.InstrumentType, atr float64) (sl, tp float64, ok bool) {
	if atr == 0 {
		return 0, 0, false
	}
	slAbs, tpAbs := m.StopLossAbs, m.TakeProfitAbs
	if instType != types.InstrumentShare {
		slAbs /= 2
		tpAbs /= 2
	}
	return slAbs / atr, tpAbs / atr, true
}
