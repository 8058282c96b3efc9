package indicators

import (
	"fmt"

	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

// DefaultDeviationMultiplier is the Bollinger band width in standard
// deviations.
var DefaultDeviationMultiplier = num.Two

// BBANDS are Bollinger bands: the mean of the last interval prices, plus and
// minus multiplier population standard deviations. A zero multiplier selects
// DefaultDeviationMultiplier.
func BBANDS(interval int, multiplier num.Decimal) (stream.Operator[num.Decimal, BandsResult], error) {
	if err := checkInterval("BBANDS", interval); err != nil {
		return nil, err
	}
	if multiplier.IsNegative() {
		return nil, fmt.Errorf("BBANDS: %w: deviation multiplier %s", ErrInvalidParameter, multiplier)
	}
	if multiplier.IsZero() {
		multiplier = DefaultDeviationMultiplier
	}

	return stream.Chain(
		stream.Window[num.Decimal](interval),
		stream.TryMap(func(prices []num.Decimal) (BandsResult, error) {
			middle := num.Mean(prices)
			squares := make([]num.Decimal, len(prices))
			for i, p := range prices {
				d := p.Sub(middle)
				squares[i] = d.Mul(d)
			}
			sd, err := num.Sqrt(num.Mean(squares))
			if err != nil {
				return BandsResult{}, err
			}
			width := sd.Mul(multiplier)
			return BandsResult{
				Lower:  middle.Sub(width),
				Middle: middle,
				Upper:  middle.Add(width),
			}, nil
		}),
	), nil
}

// BBW is the Bollinger band width, (upper-lower)/middle. A zero middle band
// yields 0.
func BBW(interval int, multiplier num.Decimal) (Operator, error) {
	bands, err := BBANDS(interval, multiplier)
	if err != nil {
		return nil, err
	}
	return stream.Chain(bands, stream.Map(func(b BandsResult) num.Decimal {
		return num.DivOr(b.Upper.Sub(b.Lower), b.Middle, num.Zero)
	})), nil
}
