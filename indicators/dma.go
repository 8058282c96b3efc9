package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

// DMA is the dual moving average: ma(short) and ma(long) of the same prices,
// paired from the first input where both are ready. The intervals are swapped
// if given in the wrong order. ma defaults to SMA.
func DMA(short, long int, ma MovingAverage) (stream.Operator[num.Decimal, DMAResult], error) {
	if err := checkIntervals("DMA", short, long); err != nil {
		return nil, err
	}
	short, long = ordered(short, long)
	ops, err := smoothing(orDefault(ma, SMA), short, long)
	if err != nil {
		return nil, err
	}

	return stream.Chain(
		crossover(ops[0], ops[1], long-short),
		stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) DMAResult {
			return DMAResult{Short: p.First, Long: p.Second}
		}),
	), nil
}
