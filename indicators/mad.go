package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

// MAD is the mean absolute deviation of the last interval prices from their
// mean.
func MAD(interval int) (Operator, error) {
	if err := checkInterval("MAD", interval); err != nil {
		return nil, err
	}
	return stream.Chain(
		stream.Window[num.Decimal](interval),
		stream.Map(func(prices []num.Decimal) num.Decimal {
			return meanDeviation(prices, num.Mean(prices))
		}),
	), nil
}
