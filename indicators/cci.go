package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

// cciConstant scales the mean deviation so most values fall in [-100, 100].
var cciConstant = num.MustParse("0.015")

// CCI is the commodity channel index over typical prices:
// (typical - SMA)/(0.015*mean deviation). A zero mean deviation yields 0.
func CCI(interval int) (stream.Operator[pricing.Candle, num.Decimal], error) {
	if err := checkInterval("CCI", interval); err != nil {
		return nil, err
	}
	mean, err := SMA(interval)
	if err != nil {
		return nil, err
	}

	return stream.Chain(TypicalPrices(), func(src stream.Stream[num.Decimal]) stream.Stream[num.Decimal] {
		rows := stream.Share(src, func(shared stream.Stream[num.Decimal]) stream.Stream[stream.Pair[num.Decimal, []num.Decimal]] {
			return stream.Zip2(mean(shared), stream.Window[num.Decimal](interval)(shared))
		})
		return stream.Map(func(p stream.Pair[num.Decimal, []num.Decimal]) num.Decimal {
			avg, prices := p.First, p.Second
			deviation := meanDeviation(prices, avg)
			return num.DivOr(prices[len(prices)-1].Sub(avg), cciConstant.Mul(deviation), num.Zero)
		})(rows)
	}), nil
}

func meanDeviation(values []num.Decimal, mean num.Decimal) num.Decimal {
	dev := make([]num.Decimal, len(values))
	for i, v := range values {
		dev[i] = v.Sub(mean).Abs()
	}
	return num.Mean(dev)
}
