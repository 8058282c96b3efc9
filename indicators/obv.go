package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

// OBV is on-balance volume: the running sum of Volume, added on a higher
// Close and subtracted on a lower one. Zero totals are not emitted, so the
// first candle never produces output.
func OBV() stream.Operator[pricing.Candle, num.Decimal] {
	return stream.Lift(func(down *stream.Subscriber[num.Decimal]) func(pricing.Candle) {
		var prev pricing.Candle
		primed := false
		total := num.Zero
		return func(c pricing.Candle) {
			if primed {
				switch {
				case c.Close.GreaterThan(prev.Close):
					total = total.Add(c.Volume)
				case c.Close.LessThan(prev.Close):
					total = total.Sub(c.Volume)
				}
			}
			prev, primed = c, true
			if !total.IsZero() {
				down.Next(total)
			}
		}
	})
}
