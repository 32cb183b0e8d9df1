package ta

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ascending(from, to float64) []float64 {
	out := []float64{}
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}

func TestShortSeriesAbsent(t *testing.T) {
	short := []float64{100, 101, 102}

	if _, ok := SMA(short, 5); ok {
		t.Error("SMA should be absent for series shorter than period")
	}
	if _, ok := EMA(short, 5); ok {
		t.Error("EMA should be absent for series shorter than period")
	}
	if _, ok := RSI(short, 5); ok {
		t.Error("RSI should be absent for series shorter than period")
	}
	// Must not panic, even on empty input.
	if _, ok := ATR(nil, 14); ok {
		t.Error("ATR should be absent for empty series")
	}
	if _, ok := ATR(short, 14); ok {
		t.Error("ATR should be absent for series shorter than period")
	}
}

func TestNonPositivePeriodAbsent(t *testing.T) {
	prices := ascending(100, 120)
	for _, n := range []int{0, -1} {
		if _, ok := SMA(prices, n); ok {
			t.Errorf("SMA with period %d should be absent", n)
		}
		if _, ok := EMA(prices, n); ok {
			t.Errorf("EMA with period %d should be absent", n)
		}
		if _, ok := RSI(prices, n); ok {
			t.Errorf("RSI with period %d should be absent", n)
		}
		if _, ok := ATR(prices, n); ok {
			t.Errorf("ATR with period %d should be absent", n)
		}
	}
}

func TestNaNInputRejected(t *testing.T) {
	prices := []float64{100, 101, math.NaN(), 103, 104}

	if _, ok := SMA(prices, 3); ok {
		t.Error("SMA must reject NaN input")
	}
	if _, ok := EMA(prices, 3); ok {
		t.Error("EMA must reject NaN input")
	}
	if _, ok := RSI(prices, 3); ok {
		t.Error("RSI must reject NaN input")
	}
	if _, ok := ATR(prices, 3); ok {
		t.Error("ATR must reject NaN input")
	}
}

func TestSMA(t *testing.T) {
	prices := ascending(100, 120) // 21 points

	sma, ok := SMA(prices, 20)
	require.True(t, ok)
	assert.InDelta(t, 110.5, sma, 1e-9, "mean of 101..120")

	sma, ok = SMA([]float64{2, 4, 6}, 3)
	require.True(t, ok)
	assert.InDelta(t, 4.0, sma, 1e-9)
}

func TestEMAPeriodOneTracksPrice(t *testing.T) {
	prices := []float64{100, 105, 95, 110}

	// k = 2/(1+1) = 1, so each step replaces the accumulator entirely.
	ema, ok := EMA(prices, 1)
	require.True(t, ok)
	assert.Equal(t, 110.0, ema)
}

func TestEMARecurrence(t *testing.T) {
	prices := []float64{10, 20, 30}

	// seed 10, k = 2/4 = 0.5: 20*0.5 + 10*0.5 = 15, 30*0.5 + 15*0.5 = 22.5
	ema, ok := EMA(prices, 3)
	require.True(t, ok)
	assert.InDelta(t, 22.5, ema, 1e-9)
}

func TestTrendBoundsOnIncreasingSeries(t *testing.T) {
	prices := ascending(100, 150)
	last := prices[len(prices)-1]

	sma, ok := SMA(prices, 20)
	require.True(t, ok)
	assert.LessOrEqual(t, sma, last)

	ema, ok := EMA(prices, 20)
	require.True(t, ok)
	assert.LessOrEqual(t, ema, last)
}

func TestRSIBoundsAndDegenerateCase(t *testing.T) {
	// Strictly increasing: loss sum is 0, RSI is exactly 100.
	rsi, ok := RSI(ascending(100, 120), 20)
	require.True(t, ok)
	assert.Equal(t, 100.0, rsi)

	// Flat series: every delta is zero, still the no-loss case.
	rsi, ok = RSI([]float64{50, 50, 50, 50}, 3)
	require.True(t, ok)
	assert.Equal(t, 100.0, rsi)

	// Mixed series stays inside [0, 100].
	mixed := []float64{100, 98, 103, 99, 104, 101, 107, 102}
	rsi, ok = RSI(mixed, 5)
	require.True(t, ok)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)

	// Strictly decreasing: no gains at all.
	rsi, ok = RSI([]float64{110, 108, 105, 101}, 3)
	require.True(t, ok)
	assert.Equal(t, 0.0, rsi)
}

func TestATR(t *testing.T) {
	// Constant step of 2: every true range after index 0 is 2.
	prices := []float64{100, 102, 104, 106, 108, 110}

	atr, ok := ATR(prices, 3)
	require.True(t, ok)
	// seed = (0+2+2)/3, then Wilder-smoothed toward 2 over the remaining steps.
	seed := 4.0 / 3.0
	want := seed
	for i := 3; i < len(prices); i++ {
		want = (want*2 + 2) / 3
	}
	assert.InDelta(t, want, atr, 1e-9)

	// Flat prices: ATR is exactly 0, the degenerate-volatility case.
	atr, ok = ATR([]float64{50, 50, 50, 50, 50}, 3)
	require.True(t, ok)
	assert.Equal(t, 0.0, atr)
}

func TestATRSeriesEqualToPeriod(t *testing.T) {
	// len == period: the seed is the final value, no smoothing steps run.
	atr, ok := ATR([]float64{100, 103, 101}, 3)
	require.True(t, ok)
	assert.InDelta(t, (0.0+3.0+2.0)/3.0, atr, 1e-9)
}
