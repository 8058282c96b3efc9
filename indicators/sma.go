package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/ring"
	"github.com/rustyeddy/signals/stream"
)

// SMA is the simple moving average: the mean of the last interval inputs,
// first emitted once interval inputs have arrived.
func SMA(interval int) (Operator, error) {
	if err := checkInterval("SMA", interval); err != nil {
		return nil, err
	}
	return stream.Lift(func(down *stream.Subscriber[num.Decimal]) func(num.Decimal) {
		w := newRollingSum(interval)
		down.OnTeardown(w.reset)
		return func(price num.Decimal) {
			if avg, ok := w.push(price); ok {
				down.Next(avg)
			}
		}
	}), nil
}

// rollingSum keeps the sum of the last n values. Decimal addition is exact so
// the running sum never drifts.
type rollingSum struct {
	buf *ring.Ring[num.Decimal]
	sum num.Decimal
	n   num.Decimal
}

func newRollingSum(interval int) *rollingSum {
	return &rollingSum{
		buf: ring.New[num.Decimal](interval),
		sum: num.Zero,
		n:   num.New(int64(interval)),
	}
}

// push adds v and returns the mean once the window is full.
func (r *rollingSum) push(v num.Decimal) (num.Decimal, bool) {
	if old, evicted := r.buf.Push(v); evicted {
		r.sum = r.sum.Sub(old)
	}
	r.sum = r.sum.Add(v)
	if !r.buf.Full() {
		return num.Zero, false
	}
	return num.Div(r.sum, r.n), true
}

func (r *rollingSum) reset() {
	r.buf.Reset()
	r.sum = num.Zero
}
