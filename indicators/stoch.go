package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

// Stochastic is the stochastic oscillator. Over the last n candles
// fastK = 100*(close-lowest low)/(highest high-lowest low), using 1 as the
// divisor when the range is zero. StochK is SMA(m) of fastK and StochD is
// SMA(p) of StochK. It reads High, Low and Close.
func Stochastic(n, m, p int) (stream.Operator[pricing.Candle, StochasticResult], error) {
	if err := checkIntervals("STOCH", n, m, p); err != nil {
		return nil, err
	}
	kOp, err := SMA(m)
	if err != nil {
		return nil, err
	}
	dOp, err := SMA(p)
	if err != nil {
		return nil, err
	}

	fastK := stream.Map(func(candles []pricing.Candle) num.Decimal {
		highest, lowest := candles[0].High, candles[0].Low
		for _, c := range candles[1:] {
			highest = num.Max(highest, c.High)
			lowest = num.Min(lowest, c.Low)
		}
		divisor := highest.Sub(lowest)
		if divisor.IsZero() {
			divisor = num.One
		}
		last := candles[len(candles)-1]
		return num.Div(num.Hundred.Mul(last.Close.Sub(lowest)), divisor)
	})

	return stream.Chain(
		stream.Chain(stream.Window[pricing.Candle](n), fastK),
		stream.Chain(
			stream.Chain(kOp, withLagging(p-1, dOp)),
			stream.Map(func(r stream.Pair[num.Decimal, num.Decimal]) StochasticResult {
				return StochasticResult{StochK: r.First, StochD: r.Second}
			}),
		),
	), nil
}

// StochasticRSI places the latest RSI within the range of the last interval
// RSI values: (rsi-min)/(max-min). A zero range yields 100.
func StochasticRSI(interval int, ma MovingAverage) (Operator, error) {
	rsi, err := RSI(interval, ma)
	if err != nil {
		return nil, err
	}

	return stream.Chain(
		stream.Chain(rsi, stream.Window[num.Decimal](interval)),
		stream.Map(func(values []num.Decimal) num.Decimal {
			hi := num.Max(values[0], values[1:]...)
			lo := num.Min(values[0], values[1:]...)
			denominator := hi.Sub(lo)
			if denominator.IsZero() {
				return num.Hundred
			}
			return num.Div(values[len(values)-1].Sub(lo), denominator)
		}),
	), nil
}
