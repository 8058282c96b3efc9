// Package catalog maps indicator specs from configuration to runnable
// candle pipelines producing printable rows.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/signals/config"
	"github.com/rustyeddy/signals/indicators"
	"github.com/rustyeddy/signals/num"
	"github.com/rustyeddy/signals/pricing"
	"github.com/rustyeddy/signals/stream"
)

var ErrUnknownIndicator = errors.New("unknown indicator")

// Field is one named value of a row.
type Field struct {
	Name  string
	Value num.Decimal
}

// Row is one indicator result stamped with the time of the candle that
// produced it.
type Row struct {
	Time      time.Time
	Indicator string
	Fields    []Field
}

// Format renders the row as "time,indicator,name=value,...". Values are
// rounded to precision places when precision is positive.
func (r Row) Format(precision int32) string {
	var b strings.Builder
	b.WriteString(r.Time.UTC().Format(time.RFC3339))
	b.WriteByte(',')
	b.WriteString(r.Indicator)
	for _, f := range r.Fields {
		v := f.Value
		if precision > 0 {
			v = v.Round(precision)
		}
		fmt.Fprintf(&b, ",%s=%s", f.Name, v.String())
	}
	return b.String()
}

// Value returns the named field.
func (r Row) Value(name string) (num.Decimal, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return num.Zero, false
}

// Pipeline is a candle-to-row operator built from a spec.
type Pipeline = stream.Operator[pricing.Candle, Row]

// Entry describes a supported indicator.
type Entry struct {
	Name        string
	Description string
	Input       string // "price" or "candle"
	Params      string // defaults, e.g. "interval=14"

	keys     []string
	defaults config.IndicatorSpec
	build    func(p params) (Pipeline, error)
	warmup   func(p params) int
}

var entries = map[string]Entry{}

func register(e Entry) {
	entries[e.Name] = e
}

// List returns all entries sorted by name.
func List() []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds an entry by case-insensitive name.
func Lookup(name string) (Entry, bool) {
	e, ok := entries[strings.ToUpper(strings.TrimSpace(name))]
	return e, ok
}

// Build validates spec and returns its pipeline.
func Build(spec config.IndicatorSpec) (Pipeline, error) {
	e, p, err := resolve(spec)
	if err != nil {
		return nil, err
	}
	return e.build(p)
}

// BuildAll runs every spec over one pass of the candles. Rows of different
// indicators for the same candle come out in spec order.
func BuildAll(specs []config.IndicatorSpec) (Pipeline, error) {
	pipelines := make([]Pipeline, 0, len(specs))
	for _, spec := range specs {
		p, err := Build(spec)
		if err != nil {
			return nil, err
		}
		pipelines = append(pipelines, p)
	}

	return func(src stream.Stream[pricing.Candle]) stream.Stream[Row] {
		return stream.Share(src, func(shared stream.Stream[pricing.Candle]) stream.Stream[Row] {
			branches := make([]stream.Stream[Row], len(pipelines))
			for i, p := range pipelines {
				branches[i] = p(shared)
			}
			return stream.Merge(branches...)
		})
	}, nil
}

// Track builds an incremental tracker for spec.
func Track(spec config.IndicatorSpec) (*indicators.Tracker[pricing.Candle, Row], error) {
	e, p, err := resolve(spec)
	if err != nil {
		return nil, err
	}
	pipeline, err := e.build(p)
	if err != nil {
		return nil, err
	}
	return indicators.Track(p.label, e.warmup(p), pipeline), nil
}

func resolve(spec config.IndicatorSpec) (Entry, params, error) {
	if err := spec.Validate(); err != nil {
		return Entry{}, params{}, err
	}
	e, ok := Lookup(spec.Name)
	if !ok {
		return Entry{}, params{}, fmt.Errorf("%w: %q", ErrUnknownIndicator, spec.Name)
	}
	p, err := newParams(e.Name, spec)
	if err != nil {
		return Entry{}, params{}, err
	}
	return e, p, nil
}

// stamp runs op over candles and turns each output into a row. Propagation
// is synchronous, so an output belongs to the candle being pushed when it is
// emitted.
func stamp[T any](label string, op stream.Operator[pricing.Candle, T], fields func(T) []Field) Pipeline {
	return func(src stream.Stream[pricing.Candle]) stream.Stream[Row] {
		return stream.Create(func(down *stream.Subscriber[Row]) {
			var at time.Time
			marked := stream.Tap(func(c pricing.Candle) { at = c.Time })(src)
			rows := stream.Map(func(v T) Row {
				return Row{Time: at, Indicator: label, Fields: fields(v)}
			})(op(marked))
			sub := rows.Subscribe(down)
			down.OnTeardown(sub.Unsubscribe)
		})
	}
}

func value(v num.Decimal) []Field {
	return []Field{{Name: "value", Value: v}}
}
