package indicators

import (
	"fmt"

	"github.com/rustyeddy/signals/stream"
)

// Indicator is the incremental view of an indicator for live use: feed one
// element at a time and read the latest result.
type Indicator[In, Out any] interface {
	// Name returns a stable identifier like "EMA(20)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed element.
	Update(v In)

	// Ready reports whether Value is meaningful.
	Ready() bool

	// Value returns the latest result, or the zero value before the first one.
	Value() Out
}

// Tracker drives a stream operator from Update calls through a Subject and
// keeps its latest output. After the operator fails, Update is a no-op and
// Err reports the failure.
type Tracker[In, Out any] struct {
	name   string
	warmup int
	op     stream.Operator[In, Out]

	feed  *stream.Subject[In]
	sub   stream.Subscription
	value Out
	ready bool
	err   error
	done  bool
}

var _ Indicator[int, int] = (*Tracker[int, int])(nil)

// Track starts a tracker for op.
func Track[In, Out any](name string, warmup int, op stream.Operator[In, Out]) *Tracker[In, Out] {
	t := &Tracker[In, Out]{name: name, warmup: warmup, op: op}
	t.attach()
	return t
}

func (t *Tracker[In, Out]) attach() {
	t.feed = stream.NewSubject[In]()
	t.sub = t.op(t.feed.Stream()).Subscribe(stream.Funcs[Out]{
		OnNext: func(v Out) {
			t.value = v
			t.ready = true
		},
		OnError: func(err error) {
			t.err = fmt.Errorf("%s: %w", t.name, err)
			t.ready = false
		},
		OnComplete: func() {
			t.done = true
		},
	})
}

func (t *Tracker[In, Out]) Name() string { return t.name }
func (t *Tracker[In, Out]) Warmup() int  { return t.warmup }

func (t *Tracker[In, Out]) Update(v In) {
	if t.err != nil || t.done {
		return
	}
	t.feed.Next(v)
}

func (t *Tracker[In, Out]) Ready() bool {
	return t.ready && t.err == nil
}

func (t *Tracker[In, Out]) Value() Out {
	return t.value
}

// Err returns the failure that stopped the tracker, if any.
func (t *Tracker[In, Out]) Err() error {
	return t.err
}

// Reset releases the running operator and starts a fresh one.
func (t *Tracker[In, Out]) Reset() {
	t.sub.Unsubscribe()
	var zero Out
	t.value, t.ready, t.err, t.done = zero, false, nil, false
	t.attach()
}

// Close completes the input. Operators that flush nothing on completion leave
// Value unchanged.
func (t *Tracker[In, Out]) Close() {
	t.feed.Complete()
}

// Calculate feeds every element and returns the resulting Value.
func (t *Tracker[In, Out]) Calculate(values []In) Out {
	for _, v := range values {
		t.Update(v)
	}
	return t.Value()
}
