package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/ring"
	"github.com/rustyeddy/signals/stream"
)

// CG is Ehlers' center of gravity over up to interval prices,
// sum(price*(i+1))/sum(price) with i counted from the oldest price, paired
// with SMA(signal) of the CG series on the same input index. A non-positive
// denominator yields 0. The first result is on the bar where the signal SMA
// first fills, and its CG is that bar's CG.
func CG(interval, signal int) (stream.Operator[num.Decimal, CGResult], error) {
	if err := checkIntervals("CG", interval, signal); err != nil {
		return nil, err
	}
	signalOp, err := SMA(signal)
	if err != nil {
		return nil, err
	}

	gravity := stream.Lift(func(down *stream.Subscriber[num.Decimal]) func(num.Decimal) {
		prices := ring.New[num.Decimal](interval)
		down.OnTeardown(prices.Reset)
		return func(price num.Decimal) {
			prices.Push(price)
			numerator, denominator := num.Zero, num.Zero
			for i, p := range prices.Slice() {
				numerator = numerator.Add(p.Mul(num.New(int64(i + 1))))
				denominator = denominator.Add(p)
			}
			if !denominator.IsPositive() {
				down.Next(num.Zero)
				return
			}
			down.Next(num.Div(numerator, denominator))
		}
	})

	return stream.Chain(
		stream.Chain(gravity, withLagging(signal-1, signalOp)),
		stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) CGResult {
			return CGResult{CG: p.First, Signal: p.Second}
		}),
	), nil
}
