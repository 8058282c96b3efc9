package pricing

import (
	"time"

	"github.com/rustyeddy/signals/num"
)

// Candle is one interval of trading activity. Indicators read only the
// fields they need: High/Low (HighLow shape), plus Close (HighLowClose),
// plus Open and Volume (OHLCV). Unused fields may be left zero.
type Candle struct {
	Instrument string // optional
	Time       time.Time

	Open  num.Decimal
	High  num.Decimal
	Low   num.Decimal
	Close num.Decimal

	Volume num.Decimal // optional
}

// Median is (High+Low)/2.
func (c Candle) Median() num.Decimal {
	return num.Div(c.High.Add(c.Low), num.Two)
}

// Typical is (High+Low+Close)/3.
func (c Candle) Typical() num.Decimal {
	return num.Div(c.High.Add(c.Low).Add(c.Close), num.New(3))
}

// Range is High-Low.
func (c Candle) Range() num.Decimal {
	return c.High.Sub(c.Low)
}

// HLC builds a candle from high, low and close literals. It panics on
// malformed input and is meant for tests and fixtures.
func HLC(high, low, close string) Candle {
	return Candle{
		High:  num.MustParse(high),
		Low:   num.MustParse(low),
		Close: num.MustParse(close),
	}
}
