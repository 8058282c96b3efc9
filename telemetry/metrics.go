package telemetry

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/rustyeddy/signals/stream"
)

const (
	EventNext     = "next"
	EventError    = "error"
	EventComplete = "complete"
)

// Metrics holds the Prometheus metrics for indicator pipelines.
type Metrics struct {
	Elements *prometheus.CounterVec // labels: operator, event
	Active   *prometheus.GaugeVec   // labels: operator
}

// NewMetrics registers the pipeline metrics with reg, or with the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signals_elements_total",
			Help: "Notifications observed per operator",
		}, []string{"operator", "event"}),
		Active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "signals_active_subscriptions",
			Help: "Live subscriptions per operator",
		}, []string{"operator"}),
	}
	reg.MustRegister(m.Elements, m.Active)
	return m
}

// Count passes elements through unchanged, counting notifications under name
// and tracking the subscription while it is live.
func Count[T any](m *Metrics, name string) stream.Operator[T, T] {
	next := m.Elements.WithLabelValues(name, EventNext)
	failed := m.Elements.WithLabelValues(name, EventError)
	completed := m.Elements.WithLabelValues(name, EventComplete)
	active := m.Active.WithLabelValues(name)

	observe := stream.Observe(stream.Funcs[T]{
		OnNext:     func(T) { next.Inc() },
		OnError:    func(error) { failed.Inc() },
		OnComplete: func() { completed.Inc() },
	})

	return func(src stream.Stream[T]) stream.Stream[T] {
		return stream.Create(func(down *stream.Subscriber[T]) {
			active.Inc()
			down.OnTeardown(active.Dec)
			sub := observe(src).Subscribe(down)
			down.OnTeardown(sub.Unsubscribe)
		})
	}
}

// WriteText writes everything g gathers in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
