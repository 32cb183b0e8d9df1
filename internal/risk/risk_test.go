package risk

import (
	"testing"

	"trend-signal-bot/internal/types"
)

func TestMultipliers(t *testing.T) {
	m := Model{StopLossAbs: 3, TakeProfitAbs: 6}

	tests := []struct {
		name     string
		instType types.InstrumentType
		atr      float64
		wantSL   float64
		wantTP   float64
		wantOK   bool
	}{
		{"share full thresholds", types.InstrumentShare, 2, 1.5, 3, true},
		{"non-share halved", types.InstrumentOther, 2, 0.75, 1.5, true},
		{"share unit atr", types.InstrumentShare, 1, 3, 6, true},
		{"zero atr undefined", types.InstrumentShare, 0, 0, 0, false},
		{"zero atr non-share undefined", types.InstrumentOther, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl, tp, ok := m.Multipliers(tt.instType, tt.atr)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if sl != tt.wantSL || tp != tt.wantTP {
				t.Errorf("multipliers = (%v, %v), want (%v, %v)", sl, tp, tt.wantSL, tt.wantTP)
			}
		})
	}
}
