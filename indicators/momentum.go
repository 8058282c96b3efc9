package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

// MOM is momentum: price - price interval inputs ago.
func MOM(interval int) (Operator, error) {
	if err := checkInterval("MOM", interval); err != nil {
		return nil, err
	}
	return stream.Chain(
		stream.Window[num.Decimal](interval+1),
		stream.Map(func(w []num.Decimal) num.Decimal {
			return w[len(w)-1].Sub(w[0])
		}),
	), nil
}

// ROC is the rate of change: (price - base)/base where base is the price
// interval inputs ago. A zero base yields 0.
func ROC(interval int) (Operator, error) {
	if err := checkInterval("ROC", interval); err != nil {
		return nil, err
	}
	return stream.Chain(
		stream.Window[num.Decimal](interval+1),
		stream.Map(func(w []num.Decimal) num.Decimal {
			return num.DivOr(w[len(w)-1].Sub(w[0]), w[0], num.Zero)
		}),
	), nil
}
