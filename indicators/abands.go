package indicators

import (
	"fmt"

	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

// ABANDS are acceleration bands. Per candle the coefficient is
// width*(High-Low)/(High+Low), or 0 when High+Low is zero, and the raw bands
// are Low*(1-coefficient), Close and High*(1+coefficient). Each band is
// smoothed by ma (default SMA).
func ABANDS(interval int, width num.Decimal, ma MovingAverage) (stream.Operator[pricing.Candle, BandsResult], error) {
	if err := checkInterval("ABANDS", interval); err != nil {
		return nil, err
	}
	if !width.IsPositive() {
		return nil, fmt.Errorf("ABANDS: %w: width %s", ErrInvalidParameter, width)
	}
	ops, err := smoothing(orDefault(ma, SMA), interval, interval, interval)
	if err != nil {
		return nil, err
	}
	lowerOp, middleOp, upperOp := ops[0], ops[1], ops[2]

	raw := stream.Map(func(c pricing.Candle) BandsResult {
		coefficient := num.DivOr(c.High.Sub(c.Low), c.High.Add(c.Low), num.Zero).Mul(width)
		return BandsResult{
			Lower:  c.Low.Mul(num.One.Sub(coefficient)),
			Middle: c.Close,
			Upper:  c.High.Mul(num.One.Add(coefficient)),
		}
	})

	return func(src stream.Stream[pricing.Candle]) stream.Stream[BandsResult] {
		rows := stream.Share(raw(src), func(shared stream.Stream[BandsResult]) stream.Stream[stream.Triple[num.Decimal, num.Decimal, num.Decimal]] {
			return stream.Zip3(
				lowerOp(stream.Map(func(b BandsResult) num.Decimal { return b.Lower })(shared)),
				middleOp(stream.Map(func(b BandsResult) num.Decimal { return b.Middle })(shared)),
				upperOp(stream.Map(func(b BandsResult) num.Decimal { return b.Upper })(shared)),
			)
		})
		return stream.Map(func(t stream.Triple[num.Decimal, num.Decimal, num.Decimal]) BandsResult {
			return BandsResult{Lower: t.First, Middle: t.Second, Upper: t.Third}
		})(rows)
	}, nil
}
