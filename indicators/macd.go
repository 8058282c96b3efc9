package indicators

import (
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/stream"
)

// MACDConfig configures MACD. Indicator defaults to ExponentialMA.
type MACDConfig struct {
	Indicator      WarmupMovingAverage
	ShortInterval  int
	LongInterval   int
	SignalInterval int
}

// DefaultMACDConfig is the classic 12/26/9 EMA setup.
func DefaultMACDConfig() MACDConfig {
	return MACDConfig{
		Indicator:      ExponentialMA,
		ShortInterval:  12,
		LongInterval:   26,
		SignalInterval: 9,
	}
}

// MACD is moving average convergence/divergence. The MACD line is
// short - long, the signal line smooths the MACD line (emitting from its
// first value) and the histogram is MACD - signal.
func MACD(cfg MACDConfig) (stream.Operator[num.Decimal, MACDResult], error) {
	if err := checkIntervals("MACD", cfg.ShortInterval, cfg.LongInterval, cfg.SignalInterval); err != nil {
		return nil, err
	}
	indicator := cfg.Indicator
	if indicator == nil {
		indicator = ExponentialMA
	}
	short, long := ordered(cfg.ShortInterval, cfg.LongInterval)

	shortOp, err := indicator(short, false)
	if err != nil {
		return nil, err
	}
	longOp, err := indicator(long, false)
	if err != nil {
		return nil, err
	}
	signalOp, err := indicator(cfg.SignalInterval, true)
	if err != nil {
		return nil, err
	}

	line := stream.Chain(
		crossover(shortOp, longOp, long-short),
		stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) num.Decimal {
			return p.First.Sub(p.Second)
		}),
	)

	return stream.Chain(
		stream.Chain(line, withLagging(0, signalOp)),
		stream.Map(func(p stream.Pair[num.Decimal, num.Decimal]) MACDResult {
			return MACDResult{
				MACD:      p.First,
				Signal:    p.Second,
				Histogram: p.First.Sub(p.Second),
			}
		}),
	), nil
}
