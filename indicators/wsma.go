package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

// WSMA is Wilder's smoothed moving average with factor 1/interval. It is
// seeded by SMA(interval) and then moves towards every input by
// (input-result)/interval.
//
// A zero result counts as unseeded: it is not emitted and the next SMA value
// seeds it again. A series whose true smoothed value is exactly zero
// therefore never emits.
func WSMA(interval int) (Operator, error) {
	if err := checkInterval("WSMA", interval); err != nil {
		return nil, err
	}
	n := num.New(int64(interval))

	return stream.Lift(func(down *stream.Subscriber[num.Decimal]) func(num.Decimal) {
		seed := newRollingSum(interval)
		result := num.Zero
		down.OnTeardown(seed.reset)
		return func(price num.Decimal) {
			avg, ok := seed.push(price)
			if !ok {
				return
			}
			if result.IsZero() {
				result = avg
			} else {
				result = result.Add(num.Div(price.Sub(result), n))
			}
			if !result.IsZero() {
				down.Next(result)
			}
		}
	}), nil
}
