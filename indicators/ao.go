package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

// AO is the awesome oscillator: ma(short) - ma(long) of median prices. It
// reads High and Low. ma defaults to SMA.
func AO(short, long int, ma MovingAverage) (stream.Operator[pricing.Candle, num.Decimal], error) {
	if err := checkIntervals("AO", short, long); err != nil {
		return nil, err
	}
	short, long = ordered(short, long)
	ops, err := smoothing(orDefault(ma, SMA), short, long)
	if err != nil {
		return nil, err
	}

	return stream.Chain(
		MedianPrices(),
		stream.Chain(
			crossover(ops[0], ops[1], long-short),
			stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) num.Decimal {
				return p.First.Sub(p.Second)
			}),
		),
	), nil
}

// AC is the accelerator oscillator: AO - SMA(signal) of AO, together with the
// one-step momentum of that result.
func AC(shortAO, longAO, signal int) (stream.Operator[pricing.Candle, ACResult], error) {
	ao, err := AO(shortAO, longAO, nil)
	if err != nil {
		return nil, err
	}
	if err := checkInterval("AC", signal); err != nil {
		return nil, err
	}
	signalOp, err := SMA(signal)
	if err != nil {
		return nil, err
	}
	mom, err := MOM(1)
	if err != nil {
		return nil, err
	}

	result := stream.Chain(
		withLagging(signal-1, signalOp),
		stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) num.Decimal {
			return p.First.Sub(p.Second)
		}),
	)

	return stream.Chain(
		stream.Chain(ao, result),
		stream.Chain(
			withLagging(1, mom),
			stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) ACResult {
				return ACResult{Momentum: p.Second, Result: p.First}
			}),
		),
	), nil
}
