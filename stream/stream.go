// Package stream is the push-based runtime every indicator is built on.
//
// A Stream is cold: each Subscribe runs the producer again, so an operator
// applied to a stream owns fresh state per subscription. Propagation is
// synchronous: a value pushed by a producer travels through every operator
// and branch before the producer emits the next one.
//
// Streams are not safe for concurrent use. A producer may run on any
// goroutine, but it must push elements one at a time.
package stream

import "errors"

var (
	// ErrOperatorPanic wraps a panic raised while an operator handled an element.
	ErrOperatorPanic = errors.New("operator panic")
	// ErrInvalidWindow is returned by Window for a non-positive size.
	ErrInvalidWindow = errors.New("window size must be positive")
)

// Observer receives the notifications of a stream: any number of Next calls
// followed by at most one Error or Complete.
type Observer[T any] interface {
	Next(v T)
	Error(err error)
	Complete()
}

// Funcs adapts plain functions to an Observer. Nil fields are ignored.
type Funcs[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

func (f Funcs[T]) Next(v T) {
	if f.OnNext != nil {
		f.OnNext(v)
	}
}

func (f Funcs[T]) Error(err error) {
	if f.OnError != nil {
		f.OnError(err)
	}
}

func (f Funcs[T]) Complete() {
	if f.OnComplete != nil {
		f.OnComplete()
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	// Unsubscribe detaches the consumer and releases all operator state.
	Unsubscribe()
	Closed() bool
}

type closer interface {
	Closed() bool
}

// Subscriber is the sink a producer pushes into. It enforces the observer
// grammar and runs teardown functions exactly once when the subscription ends.
type Subscriber[T any] struct {
	dest      Observer[T]
	closed    bool
	teardowns []func()
}

func (s *Subscriber[T]) Next(v T) {
	if s.Closed() {
		return
	}
	s.dest.Next(v)
}

func (s *Subscriber[T]) Error(err error) {
	if s.closed {
		return
	}
	s.closed = true
	s.dest.Error(err)
	s.release()
}

func (s *Subscriber[T]) Complete() {
	if s.closed {
		return
	}
	s.closed = true
	s.dest.Complete()
	s.release()
}

func (s *Subscriber[T]) Unsubscribe() {
	if s.closed {
		return
	}
	s.closed = true
	s.release()
}

// Closed reports whether the subscription ended or the consumer downstream
// detached. Synchronous producers check it between elements.
func (s *Subscriber[T]) Closed() bool {
	if s.closed {
		return true
	}
	if c, ok := s.dest.(closer); ok {
		return c.Closed()
	}
	return false
}

// OnTeardown registers fn to run when the subscription ends. Teardowns run in
// reverse registration order. If the subscription already ended fn runs now.
func (s *Subscriber[T]) OnTeardown(fn func()) {
	if s.closed {
		fn()
		return
	}
	s.teardowns = append(s.teardowns, fn)
}

func (s *Subscriber[T]) release() {
	fns := s.teardowns
	s.teardowns = nil
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Stream is a cold, push-based sequence of values. The zero Stream is empty.
type Stream[T any] struct {
	produce func(*Subscriber[T])
}

// Create builds a stream from a producer function. produce is called once per
// subscription with that subscription's Subscriber.
func Create[T any](produce func(s *Subscriber[T])) Stream[T] {
	return Stream[T]{produce: produce}
}

// Subscribe runs the producer for obs. Synchronous producers have finished
// by the time Subscribe returns.
func (s Stream[T]) Subscribe(obs Observer[T]) Subscription {
	sub := &Subscriber[T]{dest: obs}
	if s.produce == nil {
		sub.Complete()
		return sub
	}
	s.produce(sub)
	return sub
}

// Operator transforms one stream into another. Applying an operator does not
// start any work; subscribing to the result does.
type Operator[In, Out any] func(Stream[In]) Stream[Out]

// Chain composes two operators: first runs upstream of second.
func Chain[A, B, C any](first Operator[A, B], second Operator[B, C]) Operator[A, C] {
	return func(src Stream[A]) Stream[C] {
		return second(first(src))
	}
}
