package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

// EMA is ExponentialMA without warm-up output.
func EMA(interval int) (Operator, error) {
	return ExponentialMA(interval, false)
}

// ExponentialMA is the exponential moving average with weight 2/(interval+1).
// The first non-zero input seeds the average. Unless emitDuringWarmup is set
// nothing is emitted before the interval-th input.
func ExponentialMA(interval int, emitDuringWarmup bool) (Operator, error) {
	if err := checkInterval("EMA", interval); err != nil {
		return nil, err
	}
	weight := num.Div(num.Two, num.New(int64(interval+1)))
	keep := num.One.Sub(weight)

	return stream.Lift(func(down *stream.Subscriber[num.Decimal]) func(num.Decimal) {
		count := 0
		result := num.Zero
		return func(price num.Decimal) {
			count++
			if result.IsZero() {
				result = price
			}
			result = num.Round(price.Mul(weight).Add(result.Mul(keep)), num.Precision)
			if emitDuringWarmup || count >= interval {
				down.Next(result)
			}
		}
	}), nil
}

// DEMA is DoubleExponentialMA without warm-up output.
func DEMA(interval int) (Operator, error) {
	return DoubleExponentialMA(interval, false)
}

// DoubleExponentialMA is 2*EMA(price) - EMA(EMA(price)). The inner average
// emits from the first input; emitDuringWarmup applies to the outer one.
func DoubleExponentialMA(interval int, emitDuringWarmup bool) (Operator, error) {
	inner, err := ExponentialMA(interval, true)
	if err != nil {
		return nil, err
	}
	outer, err := ExponentialMA(interval, emitDuringWarmup)
	if err != nil {
		return nil, err
	}
	skip := 0
	if !emitDuringWarmup {
		skip = interval - 1
	}

	return func(src stream.Stream[num.Decimal]) stream.Stream[num.Decimal] {
		pairs := withLagging(skip, outer)(inner(src))
		return stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) num.Decimal {
			return p.First.Mul(num.Two).Sub(p.Second)
		})(pairs)
	}, nil
}
