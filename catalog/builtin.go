package catalog

import (
	"fmt"

	"github.com/rustyeddy/signals/config"
	"github.com/rustyeddy/signals/indicators"
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

func init() {
	for _, name := range []string{"SMA", "EMA", "WSMA", "DEMA"} {
		register(movingAverageEntry(name))
	}

	register(priceEntry("DMA", "dual moving average", []string{"short", "long"},
		config.IndicatorSpec{Short: 10, Long: 21},
		func(p params) int { return p.long },
		func(p params) (Pipeline, error) {
			op, err := indicators.DMA(p.short, p.long, p.movingAverage())
			if err != nil {
				return nil, err
			}
			return stamp(p.label, stream.Chain(p.prices(), op), func(r indicators.DMAResult) []Field {
				return []Field{{"short", r.Short}, {"long", r.Long}}
			}), nil
		}))

	register(priceEntry("MACD", "moving average convergence/divergence", []string{"short", "long", "signal"},
		config.IndicatorSpec{Short: 12, Long: 26, Signal: 9},
		func(p params) int { return p.long },
		func(p params) (Pipeline, error) {
			cfg := indicators.MACDConfig{ShortInterval: p.short, LongInterval: p.long, SignalInterval: p.signal}
			switch p.smoothing {
			case "", "EMA":
				cfg.Indicator = indicators.ExponentialMA
			case "DEMA":
				cfg.Indicator = indicators.DoubleExponentialMA
			default:
				return nil, fmt.Errorf("MACD: %w: smoothing %s", indicators.ErrInvalidParameter, p.smoothing)
			}
			op, err := indicators.MACD(cfg)
			if err != nil {
				return nil, err
			}
			return stamp(p.label, stream.Chain(p.prices(), op), func(r indicators.MACDResult) []Field {
				return []Field{{"macd", r.MACD}, {"signal", r.Signal}, {"histogram", r.Histogram}}
			}), nil
		}))

	register(scalarPriceEntry("RSI", "relative strength index", []string{"interval"},
		config.IndicatorSpec{Interval: 14},
		func(p params) int { return p.interval + 1 },
		func(p params) (indicators.Operator, error) { return indicators.RSI(p.interval, p.movingAverage()) }))

	register(scalarPriceEntry("STOCHRSI", "stochastic RSI", []string{"interval"},
		config.IndicatorSpec{Interval: 14},
		func(p params) int { return 2 * p.interval },
		func(p params) (indicators.Operator, error) { return indicators.StochasticRSI(p.interval, p.movingAverage()) }))

	register(scalarPriceEntry("MOM", "momentum", []string{"interval"},
		config.IndicatorSpec{Interval: 10},
		func(p params) int { return p.interval + 1 },
		func(p params) (indicators.Operator, error) { return indicators.MOM(p.interval) }))

	register(scalarPriceEntry("ROC", "rate of change", []string{"interval"},
		config.IndicatorSpec{Interval: 10},
		func(p params) int { return p.interval + 1 },
		func(p params) (indicators.Operator, error) { return indicators.ROC(p.interval) }))

	register(scalarPriceEntry("MAD", "mean absolute deviation", []string{"interval"},
		config.IndicatorSpec{Interval: 20},
		func(p params) int { return p.interval },
		func(p params) (indicators.Operator, error) { return indicators.MAD(p.interval) }))

	register(scalarPriceEntry("BBW", "Bollinger band width", []string{"interval", "multiplier"},
		config.IndicatorSpec{Interval: 20, Multiplier: "2"},
		func(p params) int { return p.interval },
		func(p params) (indicators.Operator, error) { return indicators.BBW(p.interval, p.multiplier) }))

	register(priceEntry("BBANDS", "Bollinger bands", []string{"interval", "multiplier"},
		config.IndicatorSpec{Interval: 20, Multiplier: "2"},
		func(p params) int { return p.interval },
		func(p params) (Pipeline, error) {
			op, err := indicators.BBANDS(p.interval, p.multiplier)
			if err != nil {
				return nil, err
			}
			return stamp(p.label, stream.Chain(p.prices(), op), bands), nil
		}))

	register(priceEntry("CG", "center of gravity", []string{"interval", "signal"},
		config.IndicatorSpec{Interval: 10, Signal: 3},
		func(p params) int { return p.signal },
		func(p params) (Pipeline, error) {
			op, err := indicators.CG(p.interval, p.signal)
			if err != nil {
				return nil, err
			}
			return stamp(p.label, stream.Chain(p.prices(), op), func(r indicators.CGResult) []Field {
				return []Field{{"cg", r.CG}, {"signal", r.Signal}}
			}), nil
		}))

	register(candleEntry("TR", "true range", nil,
		config.IndicatorSpec{},
		func(params) int { return 1 },
		func(p params) (Pipeline, error) {
			return stamp(p.label, indicators.TR(), value), nil
		}))

	register(scalarCandleEntry("ATR", "average true range", []string{"interval"},
		config.IndicatorSpec{Interval: 14},
		func(p params) int { return p.interval },
		func(p params) (stream.Operator[pricing.Candle, num.Decimal], error) {
			return indicators.ATR(p.interval, p.movingAverage())
		}))

	register(scalarCandleEntry("DX", "directional movement index", []string{"interval"},
		config.IndicatorSpec{Interval: 14},
		func(p params) int { return p.interval },
		func(p params) (stream.Operator[pricing.Candle, num.Decimal], error) {
			return indicators.DX(p.interval, p.movingAverage())
		}))

	register(scalarCandleEntry("ADX", "average directional index", []string{"interval"},
		config.IndicatorSpec{Interval: 14},
		func(p params) int { return 2*p.interval - 1 },
		func(p params) (stream.Operator[pricing.Candle, num.Decimal], error) {
			return indicators.ADX(p.interval, p.movingAverage())
		}))

	register(scalarCandleEntry("CCI", "commodity channel index", []string{"interval"},
		config.IndicatorSpec{Interval: 20},
		func(p params) int { return p.interval },
		func(p params) (stream.Operator[pricing.Candle, num.Decimal], error) {
			return indicators.CCI(p.interval)
		}))

	register(scalarCandleEntry("OBV", "on-balance volume", nil,
		config.IndicatorSpec{},
		func(params) int { return 2 },
		func(params) (stream.Operator[pricing.Candle, num.Decimal], error) {
			return indicators.OBV(), nil
		}))

	register(scalarCandleEntry("AO", "awesome oscillator", []string{"short", "long"},
		config.IndicatorSpec{Short: 5, Long: 34},
		func(p params) int { return p.long },
		func(p params) (stream.Operator[pricing.Candle, num.Decimal], error) {
			return indicators.AO(p.short, p.long, p.movingAverage())
		}))

	register(candleEntry("AC", "accelerator oscillator", []string{"short", "long", "signal"},
		config.IndicatorSpec{Short: 5, Long: 34, Signal: 5},
		func(p params) int { return p.long + p.signal },
		func(p params) (Pipeline, error) {
			op, err := indicators.AC(p.short, p.long, p.signal)
			if err != nil {
				return nil, err
			}
			return stamp(p.label, op, func(r indicators.ACResult) []Field {
				return []Field{{"result", r.Result}, {"momentum", r.Momentum}}
			}), nil
		}))

	register(candleEntry("STOCH", "stochastic oscillator (interval=n, short=k smoothing, signal=d smoothing)", []string{"interval", "short", "signal"},
		config.IndicatorSpec{Interval: 14, Short: 3, Signal: 3},
		func(p params) int { return p.interval + p.short + p.signal - 2 },
		func(p params) (Pipeline, error) {
			op, err := indicators.Stochastic(p.interval, p.short, p.signal)
			if err != nil {
				return nil, err
			}
			return stamp(p.label, op, func(r indicators.StochasticResult) []Field {
				return []Field{{"k", r.StochK}, {"d", r.StochD}}
			}), nil
		}))

	register(candleEntry("ABANDS", "acceleration bands", []string{"interval", "width"},
		config.IndicatorSpec{Interval: 20, Width: "4"},
		func(p params) int { return p.interval },
		func(p params) (Pipeline, error) {
			op, err := indicators.ABANDS(p.interval, p.width, p.movingAverage())
			if err != nil {
				return nil, err
			}
			return stamp(p.label, op, bands), nil
		}))
}

func bands(b indicators.BandsResult) []Field {
	return []Field{{"lower", b.Lower}, {"middle", b.Middle}, {"upper", b.Upper}}
}

func movingAverageEntry(name string) Entry {
	ma := map[string]indicators.MovingAverage{
		"SMA":  indicators.SMA,
		"EMA":  indicators.EMA,
		"WSMA": indicators.WSMA,
		"DEMA": indicators.DEMA,
	}[name]
	descriptions := map[string]string{
		"SMA":  "simple moving average",
		"EMA":  "exponential moving average",
		"WSMA": "Wilder's smoothed moving average",
		"DEMA": "double exponential moving average",
	}
	return scalarPriceEntry(name, descriptions[name], []string{"interval"},
		config.IndicatorSpec{Interval: 20},
		func(p params) int { return p.interval },
		func(p params) (indicators.Operator, error) { return ma(p.interval) })
}

func priceEntry(name, description string, keys []string, defaults config.IndicatorSpec, warmup func(params) int, build func(params) (Pipeline, error)) Entry {
	return Entry{
		Name:        name,
		Description: description,
		Input:       "price",
		Params:      describe(keys, defaults),
		keys:        keys,
		defaults:    defaults,
		warmup:      warmup,
		build:       build,
	}
}

func candleEntry(name, description string, keys []string, defaults config.IndicatorSpec, warmup func(params) int, build func(params) (Pipeline, error)) Entry {
	e := priceEntry(name, description, keys, defaults, warmup, build)
	e.Input = "candle"
	return e
}

func scalarPriceEntry(name, description string, keys []string, defaults config.IndicatorSpec, warmup func(params) int, build func(params) (indicators.Operator, error)) Entry {
	return priceEntry(name, description, keys, defaults, warmup, func(p params) (Pipeline, error) {
		op, err := build(p)
		if err != nil {
			return nil, err
		}
		return stamp(p.label, stream.Chain(p.prices(), op), value), nil
	})
}

func scalarCandleEntry(name, description string, keys []string, defaults config.IndicatorSpec, warmup func(params) int, build func(params) (stream.Operator[pricing.Candle, num.Decimal], error)) Entry {
	return candleEntry(name, description, keys, defaults, warmup, func(p params) (Pipeline, error) {
		op, err := build(p)
		if err != nil {
			return nil, err
		}
		return stamp(p.label, op, value), nil
	})
}

// describe renders defaults like "interval=14 signal=3".
func describe(keys []string, defaults config.IndicatorSpec) string {
	p, _ := paramsFromDefaults(defaults)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += k + "=" + p.get(k)
	}
	return out
}

func paramsFromDefaults(d config.IndicatorSpec) (params, error) {
	p := params{interval: d.Interval, short: d.Short, long: d.Long, signal: d.Signal}
	var err error
	if p.multiplier, err = decimalOr(d.Multiplier, ""); err != nil {
		return p, err
	}
	p.width, err = decimalOr(d.Width, "")
	return p, err
}
