package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

type directional struct {
	candle pricing.Candle
	pdm    num.Decimal
	mdm    num.Decimal
}

// directionalMovement derives +DM and -DM from consecutive candles. The first
// candle has no movement.
func directionalMovement() stream.Operator[pricing.Candle, directional] {
	return stream.Lift(func(down *stream.Subscriber[directional]) func(pricing.Candle) {
		var prev pricing.Candle
		primed := false
		return func(c pricing.Candle) {
			d := directional{candle: c, pdm: num.Zero, mdm: num.Zero}
			if primed {
				higherHigh := c.High.Sub(prev.High)
				lowerLow := prev.Low.Sub(c.Low)
				if !higherHigh.IsNegative() && !higherHigh.LessThan(lowerLow) {
					d.pdm = higherHigh
				}
				if !lowerLow.IsNegative() && !lowerLow.LessThan(higherHigh) {
					d.mdm = lowerLow
				}
			}
			prev, primed = c, true
			down.Next(d)
		}
	})
}

// DX is the directional movement index, 100*|+DI - -DI|/(+DI + -DI), where
// the DIs are the smoothed directional movements divided by ATR. A zero ATR
// gives zero DIs and a zero DI sum yields 0. ma defaults to WSMA.
func DX(interval int, ma MovingAverage) (stream.Operator[pricing.Candle, num.Decimal], error) {
	if err := checkInterval("DX", interval); err != nil {
		return nil, err
	}
	ma = orDefault(ma, WSMA)
	atr, err := ATR(interval, ma)
	if err != nil {
		return nil, err
	}
	ops, err := smoothing(ma, interval, interval)
	if err != nil {
		return nil, err
	}
	mdmOp, pdmOp := ops[0], ops[1]

	return func(src stream.Stream[pricing.Candle]) stream.Stream[num.Decimal] {
		rows := stream.Share(directionalMovement()(src), func(shared stream.Stream[directional]) stream.Stream[stream.Triple[num.Decimal, num.Decimal, num.Decimal]] {
			candles := stream.Map(func(d directional) pricing.Candle { return d.candle })(shared)
			mdm := stream.Map(func(d directional) num.Decimal { return d.mdm })(shared)
			pdm := stream.Map(func(d directional) num.Decimal { return d.pdm })(shared)
			return stream.Zip3(atr(candles), mdmOp(mdm), pdmOp(pdm))
		})
		return stream.Map(func(t stream.Triple[num.Decimal, num.Decimal, num.Decimal]) num.Decimal {
			atr, movesDown, movesUp := t.First, t.Second, t.Third
			pdi := num.DivOr(movesUp, atr, num.Zero)
			mdi := num.DivOr(movesDown, atr, num.Zero)
			return num.DivOr(pdi.Sub(mdi).Abs(), pdi.Add(mdi), num.Zero).Mul(num.Hundred)
		})(rows)
	}, nil
}

// ADX is the average directional index: DX smoothed by ma (default WSMA).
func ADX(interval int, ma MovingAverage) (stream.Operator[pricing.Candle, num.Decimal], error) {
	ma = orDefault(ma, WSMA)
	dx, err := DX(interval, ma)
	if err != nil {
		return nil, err
	}
	smooth, err := ma(interval)
	if err != nil {
		return nil, err
	}
	return stream.Chain(dx, smooth), nil
}
