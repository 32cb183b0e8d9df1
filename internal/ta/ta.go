// Package ta holds the pure indicator math. Every function is deterministic,
// never panics, and reports "not computable" through its ok result instead of
// returning NaN: too little data or a non-finite price both read as absent.
package ta

import "math"

func finite(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SMA is the arithmetic mean of the last n prices.
func SMA(prices []float64, n int) (float64, bool) {
	if n <= 0 || len(prices) < n {
		return 0, false
	}
	window := prices[len(prices)-n:]
	if !finite(window) {
		return 0, false
	}
	sum := 0.0
	for _, p := range window {
		sum += p
	}
	return sum / float64(n), true
}

// EMA seeds at the first price and folds the whole series with
// k = 2/(n+1), returning the final value of the recurrence.
func EMA(prices []float64, n int) (float64, bool) {
	if n <= 0 || len(prices) < n {
		return 0, false
	}
	if !finite(prices) {
		return 0, false
	}
	ema := prices[0]
	k := 2.0 / float64(n+1)
	for _, p := range prices[1:] {
		ema = p*k + ema*(1-k)
	}
	return ema, true
}

// RSI partitions consecutive deltas of the ENTIRE series into gains and
// losses (not a trailing window) and averages each side. A zero average loss
// is the degenerate no-loss case and yields exactly 100.
func RSI(prices []float64, n int) (float64, bool) {
	if n <= 0 || len(prices) < n {
		return 0, false
	}
	if !finite(prices) {
		return 0, false
	}
	var gainSum, lossSum float64
	var gains, losses int
	for i := 1; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		if d > 0 {
			gainSum += d
			gains++
		} else {
			lossSum -= d
			losses++
		}
	}
	avgGain := 0.0
	if gains > 0 {
		avgGain = gainSum / float64(gains)
	}
	if losses == 0 || lossSum == 0 {
		return 100, true
	}
	avgLoss := lossSum / float64(losses)
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// ATR over close-only data: all three canonical true-range components
// collapse to |p[i]-p[i-1]|, which is implemented behavior, not the textbook
// high/low/close ATR. Seed = mean of the first n true ranges (tr[0] is 0 by
// construction), then Wilder smoothing; the last smoothed value is returned.
// Absent when the series is shorter than n, so a seed can never be formed.
func ATR(prices []float64, n int) (float64, bool) {
	if n <= 0 || len(prices) < n {
		return 0, false
	}
	if !finite(prices) {
		return 0, false
	}
	tr := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		tr[i] = math.Abs(prices[i] - prices[i-1])
	}
	seed := 0.0
	for _, v := range tr[:n] {
		seed += v
	}
	atr := seed / float64(n)
	for i := n; i < len(tr); i++ {
		atr = (atr*float64(n-1) + tr[i]) / float64(n)
	}
	return atr, true
}
