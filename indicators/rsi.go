package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

type move struct {
	gain num.Decimal
	loss num.Decimal
}

// moves splits consecutive price changes into gains and losses. The first
// price only primes the comparison.
func moves() stream.Operator[num.Decimal, move] {
	return stream.Lift(func(down *stream.Subscriber[move]) func(num.Decimal) {
		var prev num.Decimal
		primed := false
		return func(price num.Decimal) {
			if !primed {
				prev, primed = price, true
				return
			}
			m := move{gain: num.Zero, loss: num.Zero}
			if price.GreaterThan(prev) {
				m.gain = price.Sub(prev)
			} else {
				m.loss = prev.Sub(price)
			}
			prev = price
			down.Next(m)
		}
	})
}

// RSI is the relative strength index, 100 - 100/(1 + avgGain/avgLoss), with
// gains and losses smoothed independently by ma (default WSMA). An average
// loss of zero yields 100.
//
// With WSMA a series without any loss never seeds the loss average, so RSI
// stays silent until the first loss. SMA and EMA report 100 instead.
func RSI(interval int, ma MovingAverage) (Operator, error) {
	if err := checkInterval("RSI", interval); err != nil {
		return nil, err
	}
	ops, err := smoothing(orDefault(ma, WSMA), interval, interval)
	if err != nil {
		return nil, err
	}
	lossOp, gainOp := ops[0], ops[1]

	return func(src stream.Stream[num.Decimal]) stream.Stream[num.Decimal] {
		averages := stream.Share(moves()(src), func(shared stream.Stream[move]) stream.Stream[stream.Pair[num.Decimal, num.Decimal]] {
			losses := stream.Map(func(m move) num.Decimal { return m.loss })(shared)
			gains := stream.Map(func(m move) num.Decimal { return m.gain })(shared)
			return stream.Zip2(lossOp(losses), gainOp(gains))
		})
		return stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) num.Decimal {
			avgLoss, avgGain := p.First, p.Second
			if avgLoss.IsZero() {
				return num.Hundred
			}
			rs := num.Div(avgGain, avgLoss)
			return num.Hundred.Sub(num.Div(num.Hundred, rs.Add(num.One)))
		})(averages)
	}, nil
}
