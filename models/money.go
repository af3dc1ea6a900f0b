package models

import "github.com/shopspring/decimal"

// Amount is a currency value. Arithmetic goes through decimal so that sums of
// prices like 0.1 + 0.2 come out exact.
type Amount struct {
	d decimal.Decimal
}

func Money(v float64) Amount {
	return Amount{d: decimal.NewFromFloat(v)}
}

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

func (a Amount) Mul(b Amount) Amount { return Amount{d: a.d.Mul(b.d)} }

// DivRound divides by n and rounds half away from zero to whole units.
// Dividing by zero yields zero.
func (a Amount) DivRound(n int) Amount {
	if n == 0 {
		return Amount{d: decimal.Zero}
	}
	return Amount{d: a.d.Div(decimal.NewFromInt(int64(n))).Round(0)}
}

func (a Amount) Float64() float64 {
	return a.d.InexactFloat64()
}

func (a Amount) String() string {
	return a.d.String()
}
