package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/signals/config"
	"github.com/rustyeddy/signals/indicators"
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

// params is a spec with the entry defaults applied.
type params struct {
	label      string
	interval   int
	short      int
	long       int
	signal     int
	multiplier num.Decimal
	width      num.Decimal
	smoothing  string
	source     string
}

func newParams(name string, spec config.IndicatorSpec) (params, error) {
	e := entries[name]
	d := e.defaults
	p := params{
		interval:  pick(spec.Interval, d.Interval),
		short:     pick(spec.Short, d.Short),
		long:      pick(spec.Long, d.Long),
		signal:    pick(spec.Signal, d.Signal),
		smoothing: strings.ToUpper(spec.Smoothing),
		source:    strings.ToLower(spec.Source),
	}

	var err error
	if p.multiplier, err = decimalOr(spec.Multiplier, d.Multiplier); err != nil {
		return params{}, fmt.Errorf("%s: multiplier: %w", name, err)
	}
	if p.width, err = decimalOr(spec.Width, d.Width); err != nil {
		return params{}, fmt.Errorf("%s: width: %w", name, err)
	}

	p.label = p.format(name, e.keys)
	return p, nil
}

func pick(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func decimalOr(v, def string) (num.Decimal, error) {
	if v == "" {
		v = def
	}
	if v == "" {
		return num.Zero, nil
	}
	return num.Parse(v)
}

// format renders a label such as "MACD(12,26,9)" or "RSI(14,EMA,typical)".
func (p params) format(name string, keys []string) string {
	parts := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		parts = append(parts, p.get(k))
	}
	if p.smoothing != "" {
		parts = append(parts, p.smoothing)
	}
	if p.source != "" && p.source != "close" {
		parts = append(parts, p.source)
	}
	if len(parts) == 0 {
		return name
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

func (p params) get(key string) string {
	switch key {
	case "interval":
		return strconv.Itoa(p.interval)
	case "short":
		return strconv.Itoa(p.short)
	case "long":
		return strconv.Itoa(p.long)
	case "signal":
		return strconv.Itoa(p.signal)
	case "multiplier":
		return p.multiplier.String()
	case "width":
		return p.width.String()
	}
	return ""
}

// movingAverage returns nil for the indicator's own default.
func (p params) movingAverage() indicators.MovingAverage {
	switch p.smoothing {
	case "SMA":
		return indicators.SMA
	case "EMA":
		return indicators.EMA
	case "WSMA":
		return indicators.WSMA
	case "DEMA":
		return indicators.DEMA
	}
	return nil
}

func (p params) prices() stream.Operator[pricing.Candle, num.Decimal] {
	switch p.source {
	case "median":
		return indicators.MedianPrices()
	case "typical":
		return indicators.TypicalPrices()
	}
	return indicators.Closes()
}
