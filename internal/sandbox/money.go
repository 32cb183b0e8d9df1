package sandbox

import "github.com/shopspring/decimal"

// MoneyValue splits an amount into integer units and nanos of a unit, the
// wire shape broker pay-in APIs use. Nano carries the sign of the whole
// amount.
type MoneyValue struct {
	Units    int64  `json:"units"`
	Nano     int32  `json:"nano"`
	Currency string `json:"currency"`
}

const nanoFactor = 1_000_000_000

// MoneyFromDecimal converts an exact decimal amount into units/nano.
func MoneyFromDecimal(d decimal.Decimal, currency string) MoneyValue {
	units := d.IntPart()
	frac := d.Sub(decimal.NewFromInt(units))
	nano := frac.Mul(decimal.NewFromInt(nanoFactor)).IntPart()
	return MoneyValue{Units: units, Nano: int32(nano), Currency: currency}
}

// Decimal reassembles the exact amount.
func (m MoneyValue) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Units).Add(decimal.New(int64(m.Nano), -9))
}
