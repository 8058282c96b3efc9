// Package indicators provides streaming technical analysis indicators.
//
// Every indicator is a stream operator: applying it to a stream of prices or
// candles yields a stream of results, and every subscription owns its own
// state. Configuration is validated when the operator is built; arithmetic
// degeneracies such as a zero denominator resolve to documented fallback
// values instead of failing the stream.
package indicators

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

var (
	ErrInvalidInterval  = errors.New("interval must be positive")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Operator is a price-to-value indicator.
type Operator = stream.Operator[num.Decimal, num.Decimal]

// MovingAverage builds a smoothing operator for an interval. SMA, EMA, WSMA
// and DEMA satisfy it, and composites accept any of them. A nil
// MovingAverage selects the composite's default.
type MovingAverage func(interval int) (Operator, error)

// WarmupMovingAverage is a MovingAverage that can optionally emit while it
// warms up. ExponentialMA and DoubleExponentialMA satisfy it.
type WarmupMovingAverage func(interval int, emitDuringWarmup bool) (Operator, error)

// DMAResult is one element of a dual moving average.
type DMAResult struct {
	Short num.Decimal
	Long  num.Decimal
}

// MACDResult is one element of MACD.
type MACDResult struct {
	MACD      num.Decimal
	Signal    num.Decimal
	Histogram num.Decimal
}

// BandsResult is one element of a band indicator.
type BandsResult struct {
	Lower  num.Decimal
	Middle num.Decimal
	Upper  num.Decimal
}

// StochasticResult is one element of the stochastic oscillator.
type StochasticResult struct {
	StochK num.Decimal
	StochD num.Decimal
}

// ACResult is one element of the accelerator oscillator.
type ACResult struct {
	Momentum num.Decimal
	Result   num.Decimal
}

// CGResult is one element of the center of gravity oscillator.
type CGResult struct {
	CG     num.Decimal
	Signal num.Decimal
}

func checkInterval(name string, interval int) error {
	if interval <= 0 {
		return fmt.Errorf("%s: %w, got %d", name, ErrInvalidInterval, interval)
	}
	return nil
}

func checkIntervals(name string, intervals ...int) error {
	for _, n := range intervals {
		if err := checkInterval(name, n); err != nil {
			return err
		}
	}
	return nil
}

// ordered returns the intervals with the shorter one first.
func ordered(short, long int) (int, int) {
	if short > long {
		return long, short
	}
	return short, long
}

func orDefault(ma, def MovingAverage) MovingAverage {
	if ma == nil {
		return def
	}
	return ma
}

// smoothing builds ma(interval) for every interval in order.
func smoothing(ma MovingAverage, intervals ...int) ([]Operator, error) {
	ops := make([]Operator, 0, len(intervals))
	for _, n := range intervals {
		op, err := ma(n)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// crossover multicasts src through a short and a long operator and pairs
// their outputs on the same input index. skip drops the short operator's
// extra warm-up outputs.
func crossover(short, long Operator, skip int) stream.Operator[num.Decimal, stream.Pair[num.Decimal, num.Decimal]] {
	return func(src stream.Stream[num.Decimal]) stream.Stream[stream.Pair[num.Decimal, num.Decimal]] {
		return stream.Share(src, func(shared stream.Stream[num.Decimal]) stream.Stream[stream.Pair[num.Decimal, num.Decimal]] {
			return stream.Zip2(stream.Skip[num.Decimal](skip)(short(shared)), long(shared))
		})
	}
}

// withLagging pairs every element of src with lag(src), skipping the first
// skip elements of src so both sides refer to the same input index.
func withLagging[T, U any](skip int, lag stream.Operator[T, U]) stream.Operator[T, stream.Pair[T, U]] {
	return func(src stream.Stream[T]) stream.Stream[stream.Pair[T, U]] {
		return stream.Share(src, func(shared stream.Stream[T]) stream.Stream[stream.Pair[T, U]] {
			return stream.Zip2(stream.Skip[T](skip)(shared), lag(shared))
		})
	}
}
