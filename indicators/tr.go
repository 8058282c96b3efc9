package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

// TR is the true range. The first candle yields High-Low; every later one
// yields max(High-Low, |High-prevClose|, |Low-prevClose|). It reads High,
// Low and Close.
func TR() stream.Operator[pricing.Candle, num.Decimal] {
	return stream.Lift(func(down *stream.Subscriber[num.Decimal]) func(pricing.Candle) {
		var prev pricing.Candle
		primed := false
		return func(c pricing.Candle) {
			tr := trueRange(c, prev, primed)
			prev, primed = c, true
			down.Next(tr)
		}
	})
}

func trueRange(current, previous pricing.Candle, hasPrevious bool) num.Decimal {
	highLow := current.High.Sub(current.Low)
	if !hasPrevious {
		return highLow
	}
	highClose := current.High.Sub(previous.Close).Abs()
	lowClose := current.Low.Sub(previous.Close).Abs()
	return num.Max(highLow, highClose, lowClose)
}

// ATR is the average true range: TR smoothed by ma (default WSMA).
func ATR(interval int, ma MovingAverage) (stream.Operator[pricing.Candle, num.Decimal], error) {
	if err := checkInterval("ATR", interval); err != nil {
		return nil, err
	}
	smooth, err := orDefault(ma, WSMA)(interval)
	if err != nil {
		return nil, err
	}
	return stream.Chain(TR(), smooth), nil
}
