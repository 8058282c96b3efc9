package indicators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

func decimals(values ...string) []num.Decimal {
	out := make([]num.Decimal, len(values))
	for i, v := range values {
		out[i] = num.MustParse(v)
	}
	return out
}

// run subscribes op to the given inputs and returns every output.
func run[In, Out any](t *testing.T, op stream.Operator[In, Out], in []In) []Out {
	t.Helper()
	out, err := stream.Collect(op(stream.FromSlice(in)))
	require.NoError(t, err)
	return out
}

func requireDecimals(t *testing.T, want []string, got []num.Decimal) {
	t.Helper()
	require.Len(t, got, len(want), "got %v", got)
	for i, w := range want {
		require.True(t, num.MustParse(w).Equal(got[i]), "index %d: want %s, got %s", i, w, got[i])
	}
}

func requireDecimal(t *testing.T, want string, got num.Decimal) {
	t.Helper()
	require.True(t, num.MustParse(want).Equal(got), "want %s, got %s", want, got)
}

// flat builds candles whose high, low and close all equal the price.
func flat(prices ...string) []pricing.Candle {
	out := make([]pricing.Candle, len(prices))
	for i, p := range prices {
		out[i] = pricing.HLC(p, p, p)
	}
	return out
}

// scenarioBars are four bars with a gap down at the end.
func scenarioBars() []pricing.Candle {
	return []pricing.Candle{
		pricing.HLC("10", "8", "9"),
		pricing.HLC("11", "9", "10"),
		pricing.HLC("12", "10", "11"),
		pricing.HLC("9", "7", "8"),
	}
}
